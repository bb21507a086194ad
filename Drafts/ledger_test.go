package Drafts_test

import (
	"testing"

	"Quill/Drafts"

	"github.com/stretchr/testify/require"
)

func TestLedgerUndoRedo(t *testing.T) {
	ledger := Drafts.NewLedger()

	ledger.Generate("first draft")
	ledger.Generate("second draft")
	require.Equal(t, "second draft", ledger.Current())

	require.Equal(t, "first draft", ledger.Undo())
	require.Equal(t, "first draft", ledger.Current())

	require.Equal(t, "second draft", ledger.Redo())
	require.Equal(t, "second draft", ledger.Current())
}

func TestLedgerNoOpsAtBounds(t *testing.T) {
	ledger := Drafts.NewLedger()
	ledger.Generate("only draft")

	t.Run("undo at first version", func(t *testing.T) {
		require.Equal(t, "only draft", ledger.Undo())
		require.Equal(t, 0, ledger.Cursor())
	})

	t.Run("redo at last version", func(t *testing.T) {
		require.Equal(t, "only draft", ledger.Redo())
		require.Equal(t, 0, ledger.Cursor())
	})
}

func TestLedgerEmpty(t *testing.T) {
	ledger := Drafts.NewLedger()
	require.Equal(t, "", ledger.Current())
	require.Equal(t, "", ledger.Undo())
	require.Equal(t, "", ledger.Redo())
	require.Equal(t, 0, ledger.Len())
}

func TestGenerateAfterUndoKeepsHistory(t *testing.T) {
	ledger := Drafts.NewLedger()
	ledger.Generate("v1")
	ledger.Generate("v2")
	ledger.Undo()

	// Generate appends, it never truncates; the cursor jumps to the newest
	// entry so redo past it is impossible.
	ledger.Generate("v3")
	require.Equal(t, 3, ledger.Len())
	require.Equal(t, "v3", ledger.Current())
	require.Equal(t, "v3", ledger.Redo())

	require.Equal(t, "v2", ledger.Undo())
	require.Equal(t, "v1", ledger.Undo())
}

func TestLedgerReset(t *testing.T) {
	ledger := Drafts.NewLedger()
	ledger.Generate("v1")
	ledger.Generate("v2")
	ledger.Reset()

	require.Equal(t, 0, ledger.Len())
	require.Equal(t, 0, ledger.Cursor())
	require.Equal(t, "", ledger.Current())
}

func TestStorePerUser(t *testing.T) {
	store := Drafts.NewStore()
	store.ForUser(1).Generate("alice draft")
	store.ForUser(2).Generate("bob draft")

	require.Equal(t, "alice draft", store.ForUser(1).Current())
	require.Equal(t, "bob draft", store.ForUser(2).Current())
	require.Same(t, store.ForUser(1), store.ForUser(1))

	store.Drop(1)
	require.Equal(t, "", store.ForUser(1).Current())
}
