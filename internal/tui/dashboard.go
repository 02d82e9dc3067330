package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/domain"
	"github.com/audit-iq-labs/auditiq/internal/store"
)

// Layout constants
const (
	headerLines  = 2 // Title line + hint line
	pageJumpSize = 10
)

// dashMode is the current input mode of the dashboard.
type dashMode int

const (
	modeNormal dashMode = iota
	modeStatus          // Picking a new status with 1-4
	modeDue             // Editing the due date in a text input
	modeJustify         // Editing the justification in a textarea
)

var (
	dashTitleStyle = lipgloss.NewStyle().Bold(true)

	dashHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	statusModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// DashboardModel renders a project's obligation checklist as an editable
// table and owns all mutation/sync logic against the backend.
type DashboardModel struct {
	// Dependencies
	store  *store.Store
	client *api.Client
	ctx    context.Context

	// UI components
	keymap    KeyMap
	help      HelpModel
	spinner   spinner.Model
	dueInput  textinput.Model
	justInput textarea.Model

	// Table state
	selected     int
	scrollOffset int

	// View state
	width        int
	height       int
	showHelp     bool
	mode         dashMode
	loading      bool
	importing    bool
	errorToast   string
	successMsg   string
	entitlements *domain.Entitlements
	quality      *domain.QualitySummary
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(s *store.Store, client *api.Client, ctx context.Context) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (empty clears)"
	ti.Prompt = "Due: "
	ti.CharLimit = 10

	ta := textarea.New()
	ta.Placeholder = "Why is this obligation satisfied or not applicable?"
	ta.CharLimit = 4000
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return DashboardModel{
		store:     s,
		client:    client,
		ctx:       ctx,
		keymap:    DefaultKeyMap(),
		help:      NewHelpModel(DefaultKeyMap()),
		spinner:   sp,
		dueInput:  ti,
		justInput: ta,
		loading:   true,
	}
}

// Init starts loading the checklist and the entitlements header data.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.WindowSize(),
		m.loadChecklist(),
		m.loadEntitlements(),
		m.loadQuality(),
	)
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.justInput.SetWidth(msg.Width - 8)
		return m, nil

	case checklistLoadedMsg:
		m.loading = false
		m.importing = false
		if msg.err != nil {
			m.errorToast = api.UserMessage(msg.err)
			return m, nil
		}
		m.store.SetItems(msg.items)
		m.store.SetSummary(msg.summary)
		m.clampSelection()
		return m, nil

	case entitlementsLoadedMsg:
		// Quota chip is best-effort; a fetch failure just leaves it blank
		if msg.err == nil {
			m.entitlements = msg.ent
		}
		return m, nil

	case qualityLoadedMsg:
		// Same best-effort treatment as the quota chip
		if msg.err == nil {
			m.quality = &msg.detail.Summary
		}
		return m, nil

	case itemUpdatedMsg:
		if err := m.store.Confirm(msg.itemID, msg.item); err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		if m.mode == modeJustify && m.store.EditingID() == "" {
			// Save settled, leave edit mode
			m.mode = modeNormal
			m.justInput.Blur()
		}
		m.successMsg = msg.action + " saved"
		m.errorToast = ""
		return m, nil

	case itemUpdateErrMsg:
		// Status/due-date changes roll back visibly; justification saves
		// only release the guard and stay in edit mode for a retry.
		_ = m.store.Rollback(msg.itemID)
		m.errorToast = fmt.Sprintf("%s failed: %s", msg.action, api.UserMessage(msg.err))
		return m, nil

	case mutationRefusedMsg:
		// The store never accepted this mutation, so there is nothing to
		// roll back and any unrelated in-flight mutation keeps its guard.
		m.errorToast = fmt.Sprintf("%s not started: %s", msg.action, msg.err.Error())
		return m, nil

	case importDoneMsg:
		if msg.err != nil {
			m.importing = false
			m.errorToast = fmt.Sprintf("Import failed: %s", api.UserMessage(msg.err))
			return m, nil
		}
		// Re-fetch; the server created the items
		return m, m.loadChecklist()

	case billingURLMsg:
		if msg.err != nil {
			m.errorToast = fmt.Sprintf("Billing portal: %s", api.UserMessage(msg.err))
			return m, nil
		}
		_ = browser.OpenURL(msg.url)
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
func (m DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.mode {
	case modeStatus:
		return m.handleStatusMode(msg)
	case modeDue:
		return m.handleDueMode(msg)
	case modeJustify:
		return m.handleJustifyMode(msg)
	}

	// Normal navigation
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g":
		m.selected = 0
		m.adjustScroll()
	case "G":
		m.selected = m.store.Len() - 1
		m.adjustScroll()
	case "ctrl+d":
		m.moveSelection(pageJumpSize)
	case "ctrl+u":
		m.moveSelection(-pageJumpSize)
	case "s":
		if item := m.selectedItem(); item != nil {
			if m.store.MutationInFlight(item.ID) {
				m.errorToast = "Previous update still pending for this item"
				return m, nil
			}
			m.mode = modeStatus
		}
	case "d":
		if item := m.selectedItem(); item != nil {
			if m.store.MutationInFlight(item.ID) {
				m.errorToast = "Previous update still pending for this item"
				return m, nil
			}
			m.mode = modeDue
			m.dueInput.SetValue(item.DueDate)
			m.dueInput.Focus()
			return m, textinput.Blink
		}
	case "i":
		if item := m.selectedItem(); item != nil {
			if err := m.store.StartEdit(item.ID); err != nil {
				m.errorToast = err.Error()
				return m, nil
			}
			m.mode = modeJustify
			m.justInput.SetValue(m.store.Draft())
			m.justInput.Focus()
			m.errorToast = ""
			m.successMsg = ""
			return m, textarea.Blink
		}
	case "e", "enter":
		if item := m.selectedItem(); item != nil {
			it := *item
			return m, func() tea.Msg { return openEvidenceMsg{item: it} }
		}
	case "A":
		return m, func() tea.Msg { return openAnalyzeMsg{} }
	case "B":
		return m, m.openBillingPortal()
	case "I":
		if m.store.Len() == 0 && !m.importing {
			m.importing = true
			m.errorToast = ""
			return m, tea.Batch(m.spinner.Tick, m.importChecklist())
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadChecklist(), m.loadEntitlements(), m.loadQuality())
	}

	return m, nil
}

// handleStatusMode handles key presses while picking a status.
func (m DashboardModel) handleStatusMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeNormal
		return m, nil
	case "1", "2", "3", "4":
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(domain.AllStatuses) {
			m.mode = modeNormal
			return m, m.changeStatus(domain.AllStatuses[idx])
		}
	}
	return m, nil
}

// handleDueMode handles key presses while editing the due date.
func (m DashboardModel) handleDueMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.dueInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.dueInput.Value())
		if value != "" {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				m.errorToast = "Due date must be YYYY-MM-DD"
				return m, nil
			}
		}
		m.mode = modeNormal
		m.dueInput.Blur()
		return m, m.changeDueDate(value)
	default:
		var cmd tea.Cmd
		m.dueInput, cmd = m.dueInput.Update(msg)
		return m, cmd
	}
}

// handleJustifyMode handles key presses while editing the justification.
func (m DashboardModel) handleJustifyMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Discard draft, no server call
		m.store.CancelEdit()
		m.mode = modeNormal
		m.justInput.Blur()
		return m, nil
	case "ctrl+s":
		m.store.SetDraft(m.justInput.Value())
		return m, m.saveJustification()
	default:
		var cmd tea.Cmd
		m.justInput, cmd = m.justInput.Update(msg)
		return m, cmd
	}
}

// changeStatus applies an optimistic status change and issues the partial
// update. Rollback happens in the itemUpdateErrMsg handler.
func (m DashboardModel) changeStatus(status domain.Status) tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}
	itemID := item.ID

	if err := m.store.SetStatus(itemID, status); err != nil {
		return func() tea.Msg { return mutationRefusedMsg{action: "Status change", err: err} }
	}

	projectID := m.store.Project().ID
	return func() tea.Msg {
		updated, err := m.client.UpdateChecklistItem(m.ctx, projectID, itemID, api.ChecklistPatch{Status: &status})
		if err != nil {
			return itemUpdateErrMsg{itemID: itemID, action: "Status", err: err}
		}
		return itemUpdatedMsg{itemID: itemID, item: updated, action: "Status"}
	}
}

// changeDueDate applies an optimistic due-date change, empty clears.
func (m DashboardModel) changeDueDate(dueDate string) tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}
	itemID := item.ID

	if err := m.store.SetDueDate(itemID, dueDate); err != nil {
		return func() tea.Msg { return mutationRefusedMsg{action: "Due date change", err: err} }
	}

	projectID := m.store.Project().ID
	return func() tea.Msg {
		updated, err := m.client.UpdateChecklistItem(m.ctx, projectID, itemID, api.ChecklistPatch{DueDate: &dueDate})
		if err != nil {
			return itemUpdateErrMsg{itemID: itemID, action: "Due date", err: err}
		}
		return itemUpdatedMsg{itemID: itemID, item: updated, action: "Due date"}
	}
}

// saveJustification sends the draft. The item value is untouched until
// the server confirms, so a failure needs no rollback: edit mode stays
// open with the draft intact.
func (m DashboardModel) saveJustification() tea.Cmd {
	itemID := m.store.EditingID()
	if itemID == "" {
		return nil
	}
	if err := m.store.BeginSave(itemID); err != nil {
		return func() tea.Msg { return mutationRefusedMsg{action: "Justification save", err: err} }
	}

	draft := m.store.Draft()
	projectID := m.store.Project().ID
	return func() tea.Msg {
		updated, err := m.client.UpdateChecklistItem(m.ctx, projectID, itemID, api.ChecklistPatch{Justification: &draft})
		if err != nil {
			return itemUpdateErrMsg{itemID: itemID, action: "Justification", err: err}
		}
		return itemUpdatedMsg{itemID: itemID, item: updated, action: "Justification"}
	}
}

// loadChecklist fetches the checklist and its server-computed summary.
func (m DashboardModel) loadChecklist() tea.Cmd {
	projectID := m.store.Project().ID
	return func() tea.Msg {
		items, err := m.client.GetChecklist(m.ctx, projectID)
		if err != nil {
			return checklistLoadedMsg{err: err}
		}
		// Summary staleness is tolerated; only full reloads refresh it
		summary, err := m.client.GetChecklistSummary(m.ctx, projectID)
		if err != nil {
			summary = nil
		}
		return checklistLoadedMsg{items: items, summary: summary}
	}
}

// loadEntitlements fetches the plan/quota state for the header chip.
func (m DashboardModel) loadEntitlements() tea.Cmd {
	return func() tea.Msg {
		ent, err := m.client.GetEntitlements(m.ctx)
		return entitlementsLoadedMsg{ent: ent, err: err}
	}
}

// loadQuality fetches the quality rollup shown next to the progress.
func (m DashboardModel) loadQuality() tea.Cmd {
	projectID := m.store.Project().ID
	return func() tea.Msg {
		detail, err := m.client.GetProjectQuality(m.ctx, projectID)
		return qualityLoadedMsg{detail: detail, err: err}
	}
}

// importChecklist bulk-imports the standard obligation set.
func (m DashboardModel) importChecklist() tea.Cmd {
	projectID := m.store.Project().ID
	return func() tea.Msg {
		return importDoneMsg{err: m.client.ImportStandardChecklist(m.ctx, projectID)}
	}
}

// openBillingPortal requests a portal URL for the current organization.
func (m DashboardModel) openBillingPortal() tea.Cmd {
	orgID := ""
	if m.entitlements != nil {
		orgID = m.entitlements.OrganizationID
	}
	return func() tea.Msg {
		url, err := m.client.CreatePortalSession(m.ctx, orgID)
		return billingURLMsg{url: url, err: err}
	}
}

// selectedItem returns the currently selected checklist item.
func (m DashboardModel) selectedItem() *domain.ChecklistItem {
	items := m.store.Items()
	if len(items) == 0 || m.selected < 0 || m.selected >= len(items) {
		return nil
	}
	return items[m.selected]
}

// moveSelection moves the row selection up or down by delta.
func (m *DashboardModel) moveSelection(delta int) {
	count := m.store.Len()
	if count == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= count {
		m.selected = count - 1
	}
	m.adjustScroll()
}

// clampSelection keeps the selection valid after a reload.
func (m *DashboardModel) clampSelection() {
	if m.selected >= m.store.Len() {
		m.selected = m.store.Len() - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.adjustScroll()
}

// adjustScroll ensures the selected row is visible.
func (m *DashboardModel) adjustScroll() {
	visible := m.visibleRows()
	if m.selected < m.scrollOffset {
		m.scrollOffset = m.selected
	}
	if m.selected >= m.scrollOffset+visible {
		m.scrollOffset = m.selected - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// visibleRows computes how many table rows fit the current height.
func (m DashboardModel) visibleRows() int {
	height := m.height
	if height == 0 {
		height = 24
	}
	rows := height - headerLines - 2 // column header + footer
	if m.mode == modeDue {
		rows -= 2
	}
	if m.mode == modeJustify {
		rows -= 7
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string
	sections = append(sections, m.renderHeader(width))
	sections = append(sections, m.renderHintLine(width))

	if m.mode == modeStatus {
		var opts []string
		for i, s := range domain.AllStatuses {
			opts = append(opts, fmt.Sprintf("[%d] %s", i+1, s.Label()))
		}
		bar := statusModeStyle.Render("STATUS") + " " + strings.Join(opts, "  ") + "  ESC to cancel"
		sections = append(sections, bar)
	}

	switch {
	case m.showHelp:
		sections = append(sections, m.help.View(width))
	case m.loading && m.store.Len() == 0:
		sections = append(sections, lipgloss.Place(width, m.visibleRows(), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading checklist..."))
	case m.store.Len() == 0:
		sections = append(sections, m.renderEmptyState(width))
	default:
		sections = append(sections, m.renderTable(width))
	}

	if m.mode == modeDue {
		sections = append(sections, panelStyle.Width(width-4).Render(
			m.dueInput.View()+"\n"+DimStyle.Render("Enter to save, ESC to cancel")))
	}
	if m.mode == modeJustify {
		label := "Justification"
		if item := m.selectedItem(); item != nil && item.ShortLabel != "" {
			label = "Justification – " + item.ShortLabel
		}
		sections = append(sections, panelStyle.Width(width-4).Render(
			dashHeaderStyle.Render(label)+"\n"+
				m.justInput.View()+"\n"+
				DimStyle.Render("Ctrl+S to save, ESC to discard")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the project title with plan and progress info.
func (m DashboardModel) renderHeader(width int) string {
	project := m.store.Project()
	if project == nil {
		return ""
	}

	title := project.Name
	if project.Regulation != "" {
		title += " · " + project.Regulation
	}

	var statusParts []string
	if m.importing {
		statusParts = append(statusParts, m.spinner.View()+"importing")
	}

	// Progress: server summary when fresh, local tally as fallback hint
	if summary := m.store.Summary(); summary != nil {
		statusParts = append(statusParts, fmt.Sprintf("%d items, %.0f%% done", summary.TotalItems, summary.CompletionPercent))
	} else if m.store.Len() > 0 {
		counts := m.store.StatusCounts()
		statusParts = append(statusParts, fmt.Sprintf("%d items, %d done", m.store.Len(), counts[domain.StatusDone]))
	}

	if m.quality != nil {
		q := fmt.Sprintf("evidence %.0f%%", m.quality.EvidenceCoveragePercent)
		if m.quality.OverdueCount > 0 {
			q += ErrorStyle.Render(fmt.Sprintf(" %d overdue", m.quality.OverdueCount))
		}
		statusParts = append(statusParts, q)
	}

	if m.entitlements != nil {
		chip := m.entitlements.PlanName
		if q, ok := m.entitlements.Quota["documents"]; ok && q.Limit != nil {
			chip = fmt.Sprintf("%s %d/%d docs", chip, q.Used, *q.Limit)
		}
		statusParts = append(statusParts, chip)
	}
	statusParts = append(statusParts, "[?]help")

	status := strings.Join(statusParts, " | ")
	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}

	return dashTitleStyle.Render(title) + strings.Repeat(" ", padding) + DimStyle.Render(status)
}

// renderHintLine renders navigation hints and the error/success toast.
func (m DashboardModel) renderHintLine(width int) string {
	left := "j/k:row s:status d:due i:justify e:evidence A:analyze r:refresh"

	right := ""
	if m.errorToast != "" {
		right = ErrorStyle.Render(m.errorToast)
	} else if m.successMsg != "" {
		right = SuccessStyle.Render(m.successMsg)
	} else if m.store.Len() > 0 {
		right = fmt.Sprintf("item %d/%d", m.selected+1, m.store.Len())
	}

	padding := width - len(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return DimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderEmptyState renders the bulk-import call to action instead of an
// empty table.
func (m DashboardModel) renderEmptyState(width int) string {
	msg := "No checklist items yet.\n\n" +
		"Press " + SelectedItemStyle.Render("I") + " to import the standard obligation checklist\n" +
		"for this project's regulation."
	if m.importing {
		msg = m.spinner.View() + " Importing standard checklist..."
	}
	return lipgloss.Place(width, m.visibleRows(), lipgloss.Center, lipgloss.Center, msg)
}

// renderTable renders the checklist rows with manual scrolling.
func (m DashboardModel) renderTable(width int) string {
	items := m.store.Items()
	visible := m.visibleRows()

	end := m.scrollOffset + visible
	if end > len(items) {
		end = len(items)
	}

	var lines []string
	lines = append(lines, dashHeaderStyle.Render(m.formatRowHeader(width)))

	if m.scrollOffset > 0 {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("↑ %d more", m.scrollOffset)))
	}

	for i := m.scrollOffset; i < end; i++ {
		line := m.formatRow(items[i], width-2)
		if i == m.selected {
			lines = append(lines, selectedRowStyle.Render("> "+line))
		} else {
			lines = append(lines, rowStyle.Render("  "+line))
		}
	}

	if remaining := len(items) - end; remaining > 0 {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	// Summary panel for the selected item below the table
	if item := m.selectedItem(); item != nil && item.Summary != "" && m.mode == modeNormal {
		wrapped := wordwrap.String(item.Summary, width-6)
		parts := strings.Split(wrapped, "\n")
		if len(parts) > 3 {
			parts = append(parts[:3], "...")
		}
		lines = append(lines, "", DimStyle.Render(strings.Join(parts, "\n")))
	}

	return strings.Join(lines, "\n")
}

// formatRowHeader builds the fixed column header line.
func (m DashboardModel) formatRowHeader(width int) string {
	return fmt.Sprintf("  %-10s %-16s %-*s %-12s %s", "REF", "STATUS", m.labelWidth(width), "OBLIGATION", "DUE", "EVIDENCE")
}

// formatRow formats one checklist item as a table row.
func (m DashboardModel) formatRow(item *domain.ChecklistItem, width int) string {
	ref := item.Reference
	if ref == "" {
		ref = "-"
	}
	ref = truncate(ref, 10)

	status := lipgloss.NewStyle().Foreground(statusColor(string(item.Status))).Render(fmt.Sprintf("%-16s", item.Status.Label()))
	if m.store.MutationInFlight(item.ID) {
		status = fmt.Sprintf("%-16s", "saving…")
	}

	labelWidth := m.labelWidth(width + 2)
	label := truncate(item.ShortLabel, labelWidth)
	if label == "" {
		label = truncate(item.Summary, labelWidth)
	}

	due := item.DueDate
	if due == "" {
		due = "-"
	}

	evidence := fmt.Sprintf("%d", item.EvidenceCount)
	if item.Justification != "" {
		evidence += " ✎"
	}

	return fmt.Sprintf("%-10s %s %-*s %-12s %s", ref, status, labelWidth, label, due, evidence)
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Cutting on rune boundaries keeps multibyte references and
// labels valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// labelWidth computes the obligation column width from the terminal width.
func (m DashboardModel) labelWidth(width int) int {
	w := width - 10 - 16 - 12 - 12 - 6
	if w < 16 {
		w = 16
	}
	return w
}

// Message types
type (
	checklistLoadedMsg struct {
		items   []domain.ChecklistItem
		summary *domain.ChecklistSummary
		err     error
	}
	entitlementsLoadedMsg struct {
		ent *domain.Entitlements
		err error
	}
	qualityLoadedMsg struct {
		detail *domain.QualityDetail
		err    error
	}
	itemUpdatedMsg struct {
		itemID string
		item   *domain.ChecklistItem
		action string
	}
	itemUpdateErrMsg struct {
		itemID string
		action string
		err    error
	}
	// mutationRefusedMsg reports a mutation the store refused to begin
	// (unknown item, invalid status, or a guard held by an earlier
	// mutation). Unlike itemUpdateErrMsg it must not trigger a rollback.
	mutationRefusedMsg struct {
		action string
		err    error
	}
	importDoneMsg struct{ err error }
	billingURLMsg struct {
		url string
		err error
	}
	openEvidenceMsg struct{ item domain.ChecklistItem }
	openAnalyzeMsg  struct{}
)
