package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// analyzePhase tracks where in the upload→analyze pipeline we are.
type analyzePhase int

const (
	phaseInput analyzePhase = iota
	phaseUploading
	phaseAnalyzing
	phaseResult
)

var severityStyles = map[string]lipgloss.Style{
	"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// AnalyzeModel drives document upload and gap analysis: pick a file,
// upload it, run the analysis, then browse extracted obligations and
// gaps in a scrollable view.
type AnalyzeModel struct {
	client    *api.Client
	ctx       context.Context
	projectID string

	pathInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model

	phase      analyzePhase
	document   *domain.UploadedDocument
	result     *domain.AnalysisResult
	summary    *domain.GapSummary
	errorToast string
	width      int
	height     int
	ready      bool
}

// NewAnalyzeModel creates the analysis screen for one project.
func NewAnalyzeModel(client *api.Client, ctx context.Context, projectID string) AnalyzeModel {
	ti := textinput.New()
	ti.Prompt = "Document path: "
	ti.Placeholder = "/path/to/policy.pdf"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AnalyzeModel{
		client:    client,
		ctx:       ctx,
		projectID: projectID,
		pathInput: ti,
		spinner:   sp,
	}
}

// Init starts the input blink.
func (m AnalyzeModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.WindowSize())
}

// Update handles messages.
func (m AnalyzeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - 6
		}
		if m.result != nil {
			m.viewport.SetContent(m.renderResult())
		}
		return m, nil

	case documentUploadedMsg:
		if msg.err != nil {
			m.phase = phaseInput
			m.errorToast = api.UserMessage(msg.err)
			return m, nil
		}
		m.document = msg.document
		m.phase = phaseAnalyzing
		return m, m.analyze(msg.document.ID)

	case analysisDoneMsg:
		if msg.err != nil {
			m.phase = phaseInput
			m.errorToast = api.UserMessage(msg.err)
			return m, nil
		}
		m.phase = phaseResult
		m.result = msg.result
		m.summary = msg.summary
		if m.ready {
			m.viewport.SetContent(m.renderResult())
			m.viewport.GotoTop()
		}
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
func (m AnalyzeModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseInput:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return closeAnalyzeMsg{} }
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.errorToast = "Enter a document path"
				return m, nil
			}
			if _, err := os.Stat(path); err != nil {
				m.errorToast = "Cannot read file: " + path
				return m, nil
			}
			m.errorToast = ""
			m.phase = phaseUploading
			return m, tea.Batch(m.spinner.Tick, m.upload(path))
		default:
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		}

	case phaseResult:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return closeAnalyzeMsg{} }
		case "n":
			// Analyze another document
			m.phase = phaseInput
			m.result = nil
			m.summary = nil
			m.pathInput.SetValue("")
			m.pathInput.Focus()
			return m, textinput.Blink
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	// Uploading/analyzing: only allow bailing out
	if msg.String() == "esc" {
		return m, func() tea.Msg { return closeAnalyzeMsg{} }
	}
	return m, nil
}

// upload sends the document to the backend.
func (m AnalyzeModel) upload(path string) tea.Cmd {
	projectID := m.projectID
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return documentUploadedMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		doc, err := m.client.UploadDocument(m.ctx, projectID, filepath.Base(path), f)
		return documentUploadedMsg{document: doc, err: err}
	}
}

// analyze runs gap analysis on an uploaded document and fetches the
// severity rollup alongside.
func (m AnalyzeModel) analyze(documentID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.AnalyzeDocument(m.ctx, documentID)
		if err != nil {
			return analysisDoneMsg{err: err}
		}
		// The rollup is derivable from the gaps; a fetch failure is not fatal
		summary, err := m.client.GetGapSummary(m.ctx, documentID)
		if err != nil {
			summary = nil
		}
		return analysisDoneMsg{result: result, summary: summary}
	}
}

// renderResult builds the scrollable analysis report.
func (m AnalyzeModel) renderResult() string {
	if m.result == nil {
		return ""
	}
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	var sections []string

	doc := m.result.Document
	sections = append(sections, dashHeaderStyle.Render(doc.Title))
	if doc.Filename != "" && doc.Filename != doc.Title {
		sections = append(sections, DimStyle.Render(doc.Filename))
	}
	sections = append(sections, "")

	if m.summary != nil {
		var parts []string
		keys := make([]string, 0, len(m.summary.BySeverity))
		for k := range m.summary.BySeverity {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, severity := range keys {
			label := fmt.Sprintf("%s: %d", severity, m.summary.BySeverity[severity])
			if style, ok := severityStyles[severity]; ok {
				label = style.Render(label)
			}
			parts = append(parts, label)
		}
		sections = append(sections, fmt.Sprintf("%d gaps (%s)", m.summary.TotalGaps, strings.Join(parts, ", ")), "")
	}

	sections = append(sections, dashHeaderStyle.Render(fmt.Sprintf("Gaps (%d)", len(m.result.Gaps))))
	if len(m.result.Gaps) == 0 {
		sections = append(sections, SuccessStyle.Render("No gaps found."))
	}
	for _, gap := range m.result.Gaps {
		severity := gap.Severity
		if style, ok := severityStyles[severity]; ok {
			severity = style.Render(severity)
		}
		sections = append(sections, fmt.Sprintf("• [%s] %s", severity, gap.RegObligationID))
		if gap.GapReason != "" {
			sections = append(sections, DimStyle.Render(wordwrap.String("  "+gap.GapReason, width)))
		}
	}
	sections = append(sections, "")

	sections = append(sections, dashHeaderStyle.Render(fmt.Sprintf("Extracted obligations (%d)", len(m.result.ExtractedObligations))))
	for _, ob := range m.result.ExtractedObligations {
		line := "• " + ob.ObligationText
		if ob.Reference != "" {
			line = "• [" + ob.Reference + "] " + ob.ObligationText
		}
		sections = append(sections, wordwrap.String(line, width))
	}

	return strings.Join(sections, "\n")
}

// View renders the screen for the current phase.
func (m AnalyzeModel) View() string {
	title := TitleStyle.Render("Document Analysis")

	switch m.phase {
	case phaseUploading:
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.spinner.View()+" Uploading document...")
	case phaseAnalyzing:
		name := ""
		if m.document != nil {
			name = " " + m.document.Filename
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.spinner.View()+" Analyzing"+name+"...")
	case phaseResult:
		footer := DimStyle.Render("j/k:scroll n:analyze another esc:back")
		return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), footer)
	}

	var lines []string
	lines = append(lines, title, "", m.pathInput.View(), "")
	if m.errorToast != "" {
		lines = append(lines, ErrorStyle.Render(m.errorToast))
	}
	lines = append(lines, DimStyle.Render("Enter to upload and analyze, ESC to go back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Message types
type (
	documentUploadedMsg struct {
		document *domain.UploadedDocument
		err      error
	}
	analysisDoneMsg struct {
		result  *domain.AnalysisResult
		summary *domain.GapSummary
		err     error
	}
	closeAnalyzeMsg struct{}
)
