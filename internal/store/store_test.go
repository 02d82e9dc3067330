package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// Test fixtures
func createTestProject() *domain.Project {
	return &domain.Project{
		ID:         "proj_123",
		Name:       "Test Project",
		Regulation: "EU AI Act",
	}
}

func createTestItems() []domain.ChecklistItem {
	return []domain.ChecklistItem{
		{
			ID:            "item_1",
			ObligationID:  "obl_1",
			Status:        domain.StatusTodo,
			ShortLabel:    "Risk management",
			Reference:     "Art. 9",
			EvidenceCount: 0,
		},
		{
			ID:            "item_2",
			ObligationID:  "obl_2",
			Status:        domain.StatusInProgress,
			ShortLabel:    "Data governance",
			Reference:     "Art. 10",
			DueDate:       "2026-10-01",
			EvidenceCount: 2,
		},
		{
			ID:            "item_3",
			ObligationID:  "obl_3",
			Status:        domain.StatusDone,
			ShortLabel:    "Technical documentation",
			Reference:     "Art. 11",
			Justification: "Covered by the QMS handbook",
			EvidenceCount: 1,
		},
	}
}

func createTestStore() *Store {
	s := New()
	s.SetProject(createTestProject())
	s.SetItems(createTestItems())
	return s
}

func TestNew(t *testing.T) {
	s := New()
	assert.NotNil(t, s)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Project())
	assert.Empty(t, s.EditingID())
}

func TestSetItems_PreservesOrder(t *testing.T) {
	s := createTestStore()

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "item_1", items[0].ID)
	assert.Equal(t, "item_2", items[1].ID)
	assert.Equal(t, "item_3", items[2].ID)
}

func TestItem(t *testing.T) {
	s := createTestStore()

	t.Run("existing item", func(t *testing.T) {
		item, err := s.Item("item_1")
		require.NoError(t, err)
		assert.Equal(t, "item_1", item.ID)
	})

	t.Run("nonexistent item", func(t *testing.T) {
		item, err := s.Item("nonexistent")
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Nil(t, item)
	})
}

// TestSetStatus_RoundTrip verifies that for every valid status, applying
// the change and confirming the echoed server value leaves the item with
// exactly that status.
func TestSetStatus_RoundTrip(t *testing.T) {
	for _, status := range domain.AllStatuses {
		t.Run(string(status), func(t *testing.T) {
			s := createTestStore()

			require.NoError(t, s.SetStatus("item_1", status))

			// Optimistic value is visible immediately
			item, err := s.Item("item_1")
			require.NoError(t, err)
			assert.Equal(t, status, item.Status)

			// Server echoes the same value
			server := *item
			require.NoError(t, s.Confirm("item_1", &server))

			item, err = s.Item("item_1")
			require.NoError(t, err)
			assert.Equal(t, status, item.Status)
			assert.False(t, s.MutationInFlight("item_1"))
		})
	}
}

// TestSetStatus_Rollback verifies that a rejected status change restores
// the pre-mutation value.
func TestSetStatus_Rollback(t *testing.T) {
	s := createTestStore()

	require.NoError(t, s.SetStatus("item_1", domain.StatusDone))
	require.NoError(t, s.Rollback("item_1"))

	item, err := s.Item("item_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, item.Status, "status should revert to pre-mutation value")
	assert.False(t, s.MutationInFlight("item_1"))
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	s := createTestStore()

	err := s.SetStatus("item_1", domain.Status("blocked"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	item, _ := s.Item("item_1")
	assert.Equal(t, domain.StatusTodo, item.Status, "invalid status must not be applied")
}

func TestSetStatus_InFlightGuard(t *testing.T) {
	s := createTestStore()

	require.NoError(t, s.SetStatus("item_1", domain.StatusInProgress))

	// Second mutation on the same item is refused until the first settles
	err := s.SetStatus("item_1", domain.StatusDone)
	assert.ErrorIs(t, err, ErrMutationInFlight)

	// A different item is independent
	assert.NoError(t, s.SetStatus("item_2", domain.StatusDone))

	// After confirmation the item accepts mutations again
	item, _ := s.Item("item_1")
	server := *item
	require.NoError(t, s.Confirm("item_1", &server))
	assert.NoError(t, s.SetStatus("item_1", domain.StatusDone))
}

func TestSetDueDate(t *testing.T) {
	s := createTestStore()

	t.Run("set and confirm", func(t *testing.T) {
		require.NoError(t, s.SetDueDate("item_1", "2026-12-31"))
		item, _ := s.Item("item_1")
		assert.Equal(t, "2026-12-31", item.DueDate)

		server := *item
		require.NoError(t, s.Confirm("item_1", &server))
	})

	t.Run("clear and rollback", func(t *testing.T) {
		require.NoError(t, s.SetDueDate("item_2", ""))
		item, _ := s.Item("item_2")
		assert.Empty(t, item.DueDate)

		require.NoError(t, s.Rollback("item_2"))
		item, _ = s.Item("item_2")
		assert.Equal(t, "2026-10-01", item.DueDate)
	})
}

// TestConfirm_ServerWins verifies the server representation overrides
// derived fields on merge.
func TestConfirm_ServerWins(t *testing.T) {
	s := createTestStore()

	require.NoError(t, s.SetStatus("item_1", domain.StatusDone))

	item, _ := s.Item("item_1")
	server := *item
	server.EvidenceCount = 5
	server.UpdatedAt = "2026-09-01T10:00:00Z"
	require.NoError(t, s.Confirm("item_1", &server))

	item, _ = s.Item("item_1")
	assert.Equal(t, 5, item.EvidenceCount)
	assert.Equal(t, "2026-09-01T10:00:00Z", item.UpdatedAt)
}

// TestStartEdit_SingleEditor verifies the at-most-one-edit invariant:
// starting edit on item B while A is being edited leaves only B editing
// and discards A's draft without any confirmation step.
func TestStartEdit_SingleEditor(t *testing.T) {
	s := createTestStore()

	require.NoError(t, s.StartEdit("item_3"))
	assert.Equal(t, "Covered by the QMS handbook", s.Draft())

	s.SetDraft("half-typed change")

	require.NoError(t, s.StartEdit("item_1"))
	assert.Equal(t, "item_1", s.EditingID())
	assert.Empty(t, s.Draft(), "B's draft starts from B's justification, A's draft is gone")

	// The abandoned edit never touched item_3
	item, _ := s.Item("item_3")
	assert.Equal(t, "Covered by the QMS handbook", item.Justification)
}

func TestJustificationSave(t *testing.T) {
	t.Run("success clears edit mode", func(t *testing.T) {
		s := createTestStore()
		require.NoError(t, s.StartEdit("item_1"))
		s.SetDraft("new justification")
		require.NoError(t, s.BeginSave("item_1"))

		item, _ := s.Item("item_1")
		server := *item
		server.Justification = "new justification"
		require.NoError(t, s.Confirm("item_1", &server))

		assert.Empty(t, s.EditingID())
		item, _ = s.Item("item_1")
		assert.Equal(t, "new justification", item.Justification)
	})

	t.Run("failure keeps edit mode and draft", func(t *testing.T) {
		s := createTestStore()
		require.NoError(t, s.StartEdit("item_1"))
		s.SetDraft("will fail")
		require.NoError(t, s.BeginSave("item_1"))

		// Guard-only mutation: rollback releases the guard, nothing to restore
		require.NoError(t, s.Rollback("item_1"))

		assert.Equal(t, "item_1", s.EditingID())
		assert.Equal(t, "will fail", s.Draft())
		item, _ := s.Item("item_1")
		assert.Empty(t, item.Justification, "source-of-truth value was never mutated")
	})
}

// TestConfirm_StatusSettleKeepsOpenEditor verifies that settling a
// snapshotted mutation (status/due date) does not tear down a
// justification editor open on the same item; only a settled
// justification save clears edit mode.
func TestConfirm_StatusSettleKeepsOpenEditor(t *testing.T) {
	s := createTestStore()

	require.NoError(t, s.SetStatus("item_1", domain.StatusInProgress))
	require.NoError(t, s.StartEdit("item_1"))
	s.SetDraft("half-typed while status request runs")

	item, _ := s.Item("item_1")
	server := *item
	require.NoError(t, s.Confirm("item_1", &server))

	assert.Equal(t, "item_1", s.EditingID(), "status confirmation must not close the editor")
	assert.Equal(t, "half-typed while status request runs", s.Draft())
	assert.False(t, s.MutationInFlight("item_1"))
}

func TestRollback_NoSnapshot(t *testing.T) {
	s := createTestStore()
	assert.ErrorIs(t, s.Rollback("item_1"), ErrNoSnapshot)
}

// TestEvidenceCount_Consistency verifies that N adds and M deletes leave
// evidence_count at initial + N - M, never negative.
func TestEvidenceCount_Consistency(t *testing.T) {
	s := createTestStore()
	s.OpenEvidence("obl_2")
	s.SetEvidence("obl_2", []domain.EvidenceItem{
		{ID: "ev_a", ObligationID: "obl_2", Title: "Policy doc"},
		{ID: "ev_b", ObligationID: "obl_2", Title: "Audit report"},
	})

	const added = 3
	for i := 0; i < added; i++ {
		s.AddEvidence(domain.EvidenceItem{
			ID:           fmt.Sprintf("ev_new_%d", i),
			ObligationID: "obl_2",
			Title:        fmt.Sprintf("Upload %d", i),
		})
	}

	item, _ := s.Item("item_2")
	assert.Equal(t, 2+added, item.EvidenceCount)

	assert.True(t, s.RemoveEvidence("ev_new_0"))
	assert.True(t, s.RemoveEvidence("ev_a"))

	item, _ = s.Item("item_2")
	assert.Equal(t, 2+added-2, item.EvidenceCount)
	assert.GreaterOrEqual(t, item.EvidenceCount, 0)
}

// TestRemoveEvidence_DeleteThenRecount mirrors the delete flow: an item
// with two cached entries ends with one entry and count 1, matched by ID.
func TestRemoveEvidence_DeleteThenRecount(t *testing.T) {
	s := createTestStore()
	s.OpenEvidence("obl_2")
	s.SetEvidence("obl_2", []domain.EvidenceItem{
		{ID: "ev_1", ObligationID: "obl_2", Title: "First"},
		{ID: "ev_2", ObligationID: "obl_2", Title: "Second"},
	})

	assert.True(t, s.RemoveEvidence("ev_1"))

	item, _ := s.Item("item_2")
	assert.Equal(t, 1, item.EvidenceCount)

	remaining := s.Evidence()
	require.Len(t, remaining, 1)
	assert.Equal(t, "ev_2", remaining[0].ID)
}

func TestRemoveEvidence_FloorsAtZero(t *testing.T) {
	s := createTestStore()
	s.OpenEvidence("obl_1") // item_1 starts at count 0
	s.SetEvidence("obl_1", []domain.EvidenceItem{
		{ID: "ev_stale", ObligationID: "obl_1", Title: "Stale"},
	})

	assert.True(t, s.RemoveEvidence("ev_stale"))

	item, _ := s.Item("item_1")
	assert.Equal(t, 0, item.EvidenceCount, "count never goes negative")
}

func TestRemoveEvidence_UnknownID(t *testing.T) {
	s := createTestStore()
	s.OpenEvidence("obl_1")
	assert.False(t, s.RemoveEvidence("nope"))
}

func TestAddEvidence_PrependsConfirmedObject(t *testing.T) {
	s := createTestStore()
	s.OpenEvidence("obl_2")
	s.SetEvidence("obl_2", []domain.EvidenceItem{
		{ID: "ev_old", ObligationID: "obl_2", Title: "Old"},
	})

	s.AddEvidence(domain.EvidenceItem{ID: "ev_new", ObligationID: "obl_2", Title: "New"})

	items := s.Evidence()
	require.Len(t, items, 2)
	assert.Equal(t, "ev_new", items[0].ID, "new record is prepended")
}

// TestSetEvidence_LateResponseDiscarded verifies that a fetch result
// arriving after the modal was closed or retargeted is ignored.
func TestSetEvidence_LateResponseDiscarded(t *testing.T) {
	s := createTestStore()

	t.Run("after close", func(t *testing.T) {
		s.OpenEvidence("obl_1")
		s.CloseEvidence()
		applied := s.SetEvidence("obl_1", []domain.EvidenceItem{{ID: "ev_1"}})
		assert.False(t, applied)
		assert.Empty(t, s.Evidence())
	})

	t.Run("after retarget", func(t *testing.T) {
		s.OpenEvidence("obl_1")
		s.OpenEvidence("obl_2")
		applied := s.SetEvidence("obl_1", []domain.EvidenceItem{{ID: "ev_1"}})
		assert.False(t, applied)
	})
}

func TestStatusCounts(t *testing.T) {
	s := createTestStore()

	counts := s.StatusCounts()
	assert.Equal(t, 1, counts[domain.StatusTodo])
	assert.Equal(t, 1, counts[domain.StatusInProgress])
	assert.Equal(t, 1, counts[domain.StatusDone])
	assert.Equal(t, 0, counts[domain.StatusNotApplicable])
}

func TestClear(t *testing.T) {
	s := createTestStore()
	require.NoError(t, s.StartEdit("item_1"))
	s.OpenEvidence("obl_1")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.EditingID())
	assert.Empty(t, s.EvidenceTarget())
	assert.NotNil(t, s.Project(), "Clear preserves the project")

	s.Reset()
	assert.Nil(t, s.Project())
}
