package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/domain"
	"github.com/audit-iq-labs/auditiq/internal/store"
)

// screen identifies which sub-model currently owns the terminal.
type screen int

const (
	screenLoading screen = iota
	screenPicker
	screenDashboard
	screenEvidence
	screenAnalyze
)

// AppModel is the top-level model: it owns the screen flow from project
// selection into the checklist dashboard and its modal screens.
type AppModel struct {
	client *api.Client
	store  *store.Store
	ctx    context.Context

	// Jump straight to this project when set, skipping the picker
	projectID string

	screen    screen
	picker    ProjectPickerModel
	dashboard DashboardModel
	evidence  EvidenceModel
	analyze   AnalyzeModel

	spinner spinner.Model
	err     error
	width   int
	height  int
}

// NewAppModel creates the application model. projectID may be empty, in
// which case a project picker is shown first.
func NewAppModel(client *api.Client, s *store.Store, ctx context.Context, projectID string) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AppModel{
		client:    client,
		store:     s,
		ctx:       ctx,
		projectID: projectID,
		screen:    screenLoading,
		spinner:   sp,
	}
}

// Init kicks off the initial load.
func (m AppModel) Init() tea.Cmd {
	if m.projectID != "" {
		return tea.Batch(m.spinner.Tick, m.loadProject(m.projectID))
	}
	return tea.Batch(m.spinner.Tick, m.loadProjects())
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Fall through to the active screen below

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case QuitMsg:
		return m, tea.Quit

	case projectsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.screen = screenPicker
		m.picker = NewProjectPickerModel(msg.projects)
		return m, m.picker.Init()

	case projectLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m.enterDashboard(*msg.project)

	case ProjectSelectedMsg:
		return m.enterDashboard(msg.Project)

	case openEvidenceMsg:
		m.screen = screenEvidence
		m.evidence = NewEvidenceModel(m.store, m.client, m.ctx, msg.item)
		return m, m.evidence.Init()

	case closeEvidenceMsg:
		m.screen = screenDashboard
		return m, tea.WindowSize()

	case openAnalyzeMsg:
		m.screen = screenAnalyze
		m.analyze = NewAnalyzeModel(m.client, m.ctx, m.store.Project().ID)
		return m, m.analyze.Init()

	case closeAnalyzeMsg:
		// Analysis may have changed quota usage; refresh the chip
		m.screen = screenDashboard
		return m, tea.Batch(tea.WindowSize(), m.dashboard.loadEntitlements())

	case spinner.TickMsg:
		if m.screen == screenLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m.delegate(msg)
}

// delegate forwards a message to the active screen model.
func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model

	switch m.screen {
	case screenPicker:
		next, cmd = m.picker.Update(msg)
		m.picker = next.(ProjectPickerModel)
	case screenDashboard:
		next, cmd = m.dashboard.Update(msg)
		m.dashboard = next.(DashboardModel)
	case screenEvidence:
		next, cmd = m.evidence.Update(msg)
		m.evidence = next.(EvidenceModel)
	case screenAnalyze:
		next, cmd = m.analyze.Update(msg)
		m.analyze = next.(AnalyzeModel)
	}

	return m, cmd
}

// enterDashboard installs the selected project and switches screens.
func (m AppModel) enterDashboard(project domain.Project) (tea.Model, tea.Cmd) {
	m.store.SetProject(&project)
	m.screen = screenDashboard
	m.dashboard = NewDashboardModel(m.store, m.client, m.ctx)
	return m, m.dashboard.Init()
}

// loadProjects fetches the project list for the picker.
func (m AppModel) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.client.ListProjects(m.ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// loadProject fetches a single project selected via flag.
func (m AppModel) loadProject(projectID string) tea.Cmd {
	return func() tea.Msg {
		project, err := m.client.GetProject(m.ctx, projectID)
		return projectLoadedMsg{project: project, err: err}
	}
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: "+api.UserMessage(m.err)) + "\n\n" +
			DimStyle.Render("Press ctrl+c to quit.")
	}

	switch m.screen {
	case screenPicker:
		return m.picker.View()
	case screenDashboard:
		return m.dashboard.View()
	case screenEvidence:
		return m.evidence.View()
	case screenAnalyze:
		return m.analyze.View()
	}

	return m.spinner.View() + " Loading..."
}

// Message types
type (
	projectsLoadedMsg struct {
		projects []domain.Project
		err      error
	}
	projectLoadedMsg struct {
		project *domain.Project
		err     error
	}
)
