// Package store provides an in-memory state management layer for a
// project's compliance checklist and evidence cache. It handles optimistic
// mutations with snapshot-and-restore rollback following the "deep
// modules" principle - simple interface hiding the reconciliation logic.
//
// The backend owns every entity; the store holds a cache copy that is
// mutated optimistically before server confirmation and reconciled (or
// rolled back) when the response arrives. All access happens from the
// single TUI event loop, so there is no locking.
package store

import (
	"errors"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

var (
	// ErrItemNotFound indicates the requested checklist item does not exist.
	ErrItemNotFound = errors.New("checklist item not found")
	// ErrInvalidStatus indicates a status outside the four enumerated values.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrMutationInFlight indicates the item already has an unsettled mutation.
	ErrMutationInFlight = errors.New("mutation already in flight for item")
	// ErrNoSnapshot indicates a rollback was requested without a prior snapshot.
	ErrNoSnapshot = errors.New("no rollback snapshot for item")
)

// Store manages the in-memory state of one project's checklist.
type Store struct {
	project *domain.Project
	summary *domain.ChecklistSummary

	// Checklist items in server order
	items map[string]*domain.ChecklistItem // item ID -> item
	order []string

	// Pre-mutation copies for rollback, one per item
	snapshots map[string]*domain.ChecklistItem

	// Per-item guard: a second status/due-date mutation on the same item
	// is refused until the first settles. Different items stay independent.
	inflight map[string]bool

	// Justification editing (at most one item at a time)
	editingID string
	draft     string

	// Evidence cache, scoped to the obligation currently inspected
	evidenceTarget string // obligation ID, empty when the modal is closed
	evidence       []domain.EvidenceItem
}

// New creates a new empty Store instance.
func New() *Store {
	return &Store{
		items:     make(map[string]*domain.ChecklistItem),
		snapshots: make(map[string]*domain.ChecklistItem),
		inflight:  make(map[string]bool),
	}
}

// SetProject sets the current project metadata.
func (s *Store) SetProject(project *domain.Project) {
	s.project = project
}

// Project returns the current project, or nil if not set.
func (s *Store) Project() *domain.Project {
	return s.project
}

// SetSummary stores the last server-computed checklist summary.
func (s *Store) SetSummary(summary *domain.ChecklistSummary) {
	s.summary = summary
}

// Summary returns the last fetched summary, or nil. The summary goes
// stale after mutations; callers re-fetch rather than recompute it.
func (s *Store) Summary() *domain.ChecklistSummary {
	return s.summary
}

// SetItems replaces the checklist with the given items, preserving their
// order. Pending snapshots and guards are discarded: a full reload makes
// the server state authoritative again.
func (s *Store) SetItems(items []domain.ChecklistItem) {
	s.items = make(map[string]*domain.ChecklistItem, len(items))
	s.order = make([]string, 0, len(items))
	s.snapshots = make(map[string]*domain.ChecklistItem)
	s.inflight = make(map[string]bool)

	for i := range items {
		item := items[i]
		s.items[item.ID] = &item
		s.order = append(s.order, item.ID)
	}
}

// Items returns the checklist items in server order.
func (s *Store) Items() []*domain.ChecklistItem {
	result := make([]*domain.ChecklistItem, 0, len(s.order))
	for _, id := range s.order {
		if item, ok := s.items[id]; ok {
			result = append(result, item)
		}
	}
	return result
}

// Item retrieves one checklist item by ID, returning ErrItemNotFound if
// it does not exist.
func (s *Store) Item(itemID string) (*domain.ChecklistItem, error) {
	item, exists := s.items[itemID]
	if !exists {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Len returns the number of checklist items.
func (s *Store) Len() int {
	return len(s.order)
}

// StatusCounts tallies items per status from local state. This is a
// between-refresh hint for the header; the authoritative aggregate is the
// server summary.
func (s *Store) StatusCounts() map[domain.Status]int {
	counts := make(map[domain.Status]int, len(domain.AllStatuses))
	for _, item := range s.items {
		counts[item.Status]++
	}
	return counts
}

// MutationInFlight reports whether the item has an unsettled mutation.
func (s *Store) MutationInFlight(itemID string) bool {
	return s.inflight[itemID]
}

// SetStatus performs an optimistic status change. The previous state is
// snapshotted for rollback and the item is guarded until Confirm or
// Rollback settles the mutation.
func (s *Store) SetStatus(itemID string, status domain.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	item, err := s.beginMutation(itemID, true)
	if err != nil {
		return err
	}
	item.Status = status
	return nil
}

// SetDueDate performs an optimistic due-date change. An empty date clears
// the field. Same snapshot/guard semantics as SetStatus.
func (s *Store) SetDueDate(itemID, dueDate string) error {
	item, err := s.beginMutation(itemID, true)
	if err != nil {
		return err
	}
	item.DueDate = dueDate
	return nil
}

// BeginSave guards an item for a non-optimistic mutation (justification
// save): no local change is applied, so no snapshot is taken and a later
// Rollback only releases the guard.
func (s *Store) BeginSave(itemID string) error {
	_, err := s.beginMutation(itemID, false)
	return err
}

// beginMutation looks up the item, checks the in-flight guard, and
// optionally snapshots the current state for rollback.
func (s *Store) beginMutation(itemID string, snapshot bool) (*domain.ChecklistItem, error) {
	item, exists := s.items[itemID]
	if !exists {
		return nil, ErrItemNotFound
	}
	if s.inflight[itemID] {
		return nil, ErrMutationInFlight
	}

	if snapshot {
		saved := *item
		s.snapshots[itemID] = &saved
	}
	s.inflight[itemID] = true
	return item, nil
}

// Confirm merges the server's authoritative representation into local
// state and settles the mutation. The server copy wins for every field;
// derived fields like evidence_count follow it. When the settled mutation
// was a justification save (guard-only, no snapshot), edit mode for the
// item is cleared; confirmations of snapshotted mutations leave an open
// editor and its draft alone.
func (s *Store) Confirm(itemID string, server *domain.ChecklistItem) error {
	if _, exists := s.items[itemID]; !exists {
		return ErrItemNotFound
	}

	merged := *server
	merged.ID = itemID
	s.items[itemID] = &merged

	_, snapshotted := s.snapshots[itemID]
	settled := s.inflight[itemID]
	delete(s.snapshots, itemID)
	delete(s.inflight, itemID)

	if s.editingID == itemID && settled && !snapshotted {
		s.CancelEdit()
	}
	return nil
}

// Rollback restores the pre-mutation snapshot (when one was taken) and
// releases the in-flight guard. For guard-only mutations there is nothing
// to restore; the item keeps its current state.
func (s *Store) Rollback(itemID string) error {
	defer delete(s.inflight, itemID)

	saved, exists := s.snapshots[itemID]
	if !exists {
		if !s.inflight[itemID] {
			return ErrNoSnapshot
		}
		return nil
	}

	s.items[itemID] = saved
	delete(s.snapshots, itemID)
	return nil
}

// StartEdit puts an item into justification edit mode, copying its current
// justification into the draft buffer. Starting an edit while another item
// is being edited discards that item's draft: at most one item is ever in
// edit mode.
func (s *Store) StartEdit(itemID string) error {
	item, exists := s.items[itemID]
	if !exists {
		return ErrItemNotFound
	}
	s.editingID = itemID
	s.draft = item.Justification
	return nil
}

// CancelEdit discards the draft and clears edit mode.
func (s *Store) CancelEdit() {
	s.editingID = ""
	s.draft = ""
}

// EditingID returns the item currently in edit mode, or empty.
func (s *Store) EditingID() string {
	return s.editingID
}

// Draft returns the justification draft being composed.
func (s *Store) Draft() string {
	return s.draft
}

// SetDraft replaces the justification draft.
func (s *Store) SetDraft(text string) {
	s.draft = text
}

// OpenEvidence targets the evidence cache at one obligation and clears
// any previously cached list.
func (s *Store) OpenEvidence(obligationID string) {
	s.evidenceTarget = obligationID
	s.evidence = nil
}

// EvidenceTarget returns the obligation the cache is scoped to, or empty
// when the modal is closed.
func (s *Store) EvidenceTarget() string {
	return s.evidenceTarget
}

// SetEvidence replaces the cached evidence list if the result still
// matches the open target. Late-arriving responses for a closed or
// retargeted modal are discarded and false is returned.
func (s *Store) SetEvidence(obligationID string, items []domain.EvidenceItem) bool {
	if obligationID != s.evidenceTarget {
		return false
	}
	s.evidence = items
	return true
}

// Evidence returns the cached evidence list for the open target.
func (s *Store) Evidence() []domain.EvidenceItem {
	return s.evidence
}

// AddEvidence prepends a confirmed server object to the cache and
// increments the owning checklist item's evidence count. The confirmed
// object (not a locally fabricated placeholder) is cached so a later
// deletion matches by ID.
func (s *Store) AddEvidence(item domain.EvidenceItem) {
	s.evidence = append([]domain.EvidenceItem{item}, s.evidence...)
	s.adjustEvidenceCount(item.ObligationID, 1)
}

// RemoveEvidence drops one record from the cache after the server
// confirmed the deletion, decrementing the owning item's evidence count
// floored at zero. Returns false if the ID is not in the cache.
func (s *Store) RemoveEvidence(evidenceID string) bool {
	for i, e := range s.evidence {
		if e.ID == evidenceID {
			s.evidence = append(s.evidence[:i], s.evidence[i+1:]...)
			s.adjustEvidenceCount(e.ObligationID, -1)
			return true
		}
	}
	return false
}

// CloseEvidence clears all evidence-modal state. In-flight fetches are not
// cancelled; their late results fail the SetEvidence target check.
func (s *Store) CloseEvidence() {
	s.evidenceTarget = ""
	s.evidence = nil
}

// adjustEvidenceCount shifts the evidence count of every checklist item
// tracking the given obligation, floored at zero.
func (s *Store) adjustEvidenceCount(obligationID string, delta int) {
	if obligationID == "" {
		obligationID = s.evidenceTarget
	}
	for _, item := range s.items {
		if item.ObligationID == obligationID {
			item.EvidenceCount += delta
			if item.EvidenceCount < 0 {
				item.EvidenceCount = 0
			}
		}
	}
}

// Clear resets checklist and evidence state, preserving the project.
func (s *Store) Clear() {
	s.items = make(map[string]*domain.ChecklistItem)
	s.order = nil
	s.snapshots = make(map[string]*domain.ChecklistItem)
	s.inflight = make(map[string]bool)
	s.summary = nil
	s.CancelEdit()
	s.CloseEvidence()
}

// Reset completely resets the store to initial state.
func (s *Store) Reset() {
	s.project = nil
	s.Clear()
}
