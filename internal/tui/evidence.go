package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/domain"
	"github.com/audit-iq-labs/auditiq/internal/store"
)

// evidenceMode is the current input mode of the evidence screen.
type evidenceMode int

const (
	evModeList evidenceMode = iota
	evModeAdd
	evModeConfirmDelete
)

// Form field indices
const (
	evFieldTitle = iota
	evFieldDescription
	evFieldFile
	evFieldCount
)

// EvidenceModel shows the evidence records attached to one checklist
// item and lets the user add or remove them.
type EvidenceModel struct {
	store  *store.Store
	client *api.Client
	ctx    context.Context

	item    domain.ChecklistItem
	spinner spinner.Model
	inputs  []textinput.Model
	focused int

	selected   int
	mode       evidenceMode
	loading    bool
	submitting bool
	errorToast string
	width      int
	height     int
}

// NewEvidenceModel creates an evidence screen for a checklist item.
func NewEvidenceModel(s *store.Store, client *api.Client, ctx context.Context, item domain.ChecklistItem) EvidenceModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	inputs := make([]textinput.Model, evFieldCount)

	inputs[evFieldTitle] = textinput.New()
	inputs[evFieldTitle].Prompt = "Title: "
	inputs[evFieldTitle].CharLimit = 200

	inputs[evFieldDescription] = textinput.New()
	inputs[evFieldDescription].Prompt = "Description: "
	inputs[evFieldDescription].CharLimit = 500

	inputs[evFieldFile] = textinput.New()
	inputs[evFieldFile].Prompt = "File path: "
	inputs[evFieldFile].Placeholder = "optional, uploads the file as the record"

	return EvidenceModel{
		store:   s,
		client:  client,
		ctx:     ctx,
		item:    item,
		spinner: sp,
		inputs:  inputs,
		loading: true,
	}
}

// Init registers the evidence target and starts loading.
func (m EvidenceModel) Init() tea.Cmd {
	m.store.OpenEvidence(m.item.ObligationID)
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), m.loadEvidence())
}

// Update handles messages.
func (m EvidenceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case evidenceLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorToast = api.UserMessage(msg.err)
			return m, nil
		}
		// Discard responses that arrive after the screen moved on
		if !m.store.SetEvidence(msg.obligationID, msg.items) {
			return m, nil
		}
		m.clampSelection()
		return m, nil

	case evidenceCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errorToast = api.UserMessage(msg.err)
			return m, nil
		}
		m.store.AddEvidence(*msg.item)
		m.mode = evModeList
		m.selected = 0
		m.resetForm()
		return m, nil

	case evidenceDeletedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errorToast = fmt.Sprintf("Delete failed: %s", api.UserMessage(msg.err))
			m.mode = evModeList
			return m, nil
		}
		m.store.RemoveEvidence(msg.evidenceID)
		m.mode = evModeList
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m EvidenceModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case evModeAdd:
		return m.handleAddMode(msg)
	case evModeConfirmDelete:
		return m.handleConfirmMode(msg)
	}

	records := m.store.Evidence()
	switch msg.String() {
	case "q", "esc":
		m.store.CloseEvidence()
		return m, func() tea.Msg { return closeEvidenceMsg{} }
	case "j", "down":
		if m.selected < len(records)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "a":
		m.mode = evModeAdd
		m.errorToast = ""
		m.focused = evFieldTitle
		m.inputs[evFieldTitle].Focus()
		return m, textinput.Blink
	case "x", "delete":
		if m.selected < len(records) {
			m.mode = evModeConfirmDelete
		}
	case "o":
		if m.selected < len(records) && records[m.selected].StorageURL != "" {
			_ = browser.OpenURL(records[m.selected].StorageURL)
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadEvidence())
	}

	return m, nil
}

// handleAddMode handles key presses in the add-evidence form.
func (m EvidenceModel) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = evModeList
		m.resetForm()
		return m, nil
	case "tab", "down":
		m.focusField((m.focused + 1) % evFieldCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.focusField((m.focused + evFieldCount - 1) % evFieldCount)
		return m, textinput.Blink
	case "enter":
		return m.submitEvidence()
	default:
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
}

// handleConfirmMode handles the delete confirmation prompt.
func (m EvidenceModel) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		records := m.store.Evidence()
		if m.selected >= len(records) {
			m.mode = evModeList
			return m, nil
		}
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.deleteEvidence(records[m.selected].ID))
	case "n", "N", "esc":
		m.mode = evModeList
	}
	return m, nil
}

// submitEvidence validates the form and issues either a file upload or a
// plain JSON create.
func (m EvidenceModel) submitEvidence() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.inputs[evFieldTitle].Value())
	description := strings.TrimSpace(m.inputs[evFieldDescription].Value())
	filePath := strings.TrimSpace(m.inputs[evFieldFile].Value())

	if title == "" && filePath == "" {
		m.errorToast = "Provide a title or a file path"
		return m, nil
	}

	m.errorToast = ""
	m.submitting = true
	projectID := m.store.Project().ID
	obligationID := m.item.ObligationID

	if filePath == "" {
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			created, err := m.client.CreateEvidence(m.ctx, projectID, obligationID, title, description)
			return evidenceCreatedMsg{item: created, err: err}
		})
	}

	if title == "" {
		title = filepath.Base(filePath)
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		f, err := os.Open(filePath)
		if err != nil {
			return evidenceCreatedMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		created, err := m.client.UploadEvidence(m.ctx, projectID, obligationID, title, description, filepath.Base(filePath), f)
		return evidenceCreatedMsg{item: created, err: err}
	})
}

// loadEvidence fetches the records for the item's obligation.
func (m EvidenceModel) loadEvidence() tea.Cmd {
	projectID := m.store.Project().ID
	obligationID := m.item.ObligationID
	return func() tea.Msg {
		items, err := m.client.ListEvidence(m.ctx, projectID, obligationID)
		return evidenceLoadedMsg{obligationID: obligationID, items: items, err: err}
	}
}

// deleteEvidence removes one record by ID.
func (m EvidenceModel) deleteEvidence(evidenceID string) tea.Cmd {
	return func() tea.Msg {
		return evidenceDeletedMsg{evidenceID: evidenceID, err: m.client.DeleteEvidence(m.ctx, evidenceID)}
	}
}

// focusField moves keyboard focus to one form field.
func (m *EvidenceModel) focusField(idx int) {
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.focused = idx
}

// resetForm clears the add-evidence inputs.
func (m *EvidenceModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = evFieldTitle
	m.errorToast = ""
}

// clampSelection keeps the selection valid after the list changes.
func (m *EvidenceModel) clampSelection() {
	count := len(m.store.Evidence())
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// View renders the evidence screen.
func (m EvidenceModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	label := m.item.ShortLabel
	if label == "" {
		label = m.item.ObligationID
	}
	title := TitleStyle.Render("Evidence – " + label)
	if m.item.Reference != "" {
		title += DimStyle.Render("  " + m.item.Reference)
	}

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " Loading evidence..."
	case m.mode == evModeAdd:
		body = m.renderForm()
	default:
		body = m.renderList(width)
	}

	footer := DimStyle.Render("a:add x:delete o:open file r:refresh esc:back")
	if m.mode == evModeAdd {
		footer = DimStyle.Render("tab:next field enter:save esc:cancel")
	}
	if m.errorToast != "" {
		footer = ErrorStyle.Render(m.errorToast)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)
}

// renderList renders the evidence records.
func (m EvidenceModel) renderList(width int) string {
	records := m.store.Evidence()
	if len(records) == 0 {
		return DimStyle.Render("No evidence attached yet. Press 'a' to add a record.")
	}

	var lines []string
	for i, record := range records {
		marker := "  "
		style := NormalItemStyle
		if i == m.selected {
			marker = "> "
			style = SelectedItemStyle
		}

		line := record.Title
		if record.FileType != "" {
			line += DimStyle.Render(" [" + record.FileType + "]")
		}
		if record.UploadedAt != "" {
			line += DimStyle.Render("  " + record.UploadedAt)
		}
		lines = append(lines, style.Render(marker+line))

		if record.Description != "" {
			desc := wordwrap.String(record.Description, width-6)
			for _, d := range strings.Split(desc, "\n") {
				lines = append(lines, DimStyle.Render("    "+d))
			}
		}

		if i == m.selected && m.mode == evModeConfirmDelete {
			lines = append(lines, ErrorStyle.Render("    Delete this record? (y/n)"))
		}
	}

	if m.submitting {
		lines = append(lines, "", m.spinner.View()+" Saving...")
	}
	return strings.Join(lines, "\n")
}

// renderForm renders the add-evidence form.
func (m EvidenceModel) renderForm() string {
	var lines []string
	lines = append(lines, dashHeaderStyle.Render("New evidence record"))
	for i := range m.inputs {
		lines = append(lines, m.inputs[i].View())
	}
	if m.submitting {
		lines = append(lines, "", m.spinner.View()+" Saving...")
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Message types
type (
	evidenceLoadedMsg struct {
		obligationID string
		items        []domain.EvidenceItem
		err          error
	}
	evidenceCreatedMsg struct {
		item *domain.EvidenceItem
		err  error
	}
	evidenceDeletedMsg struct {
		evidenceID string
		err        error
	}
	closeEvidenceMsg struct{}
)
