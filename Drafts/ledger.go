package Drafts

import "sync"

// Ledger is an append-only history of generated drafts with a cursor pointing
// at the currently displayed version. Generate is the only operation that
// changes the length; undo/redo only move the cursor.
type Ledger struct {
	mu       sync.Mutex
	versions []string
	cursor   int
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Generate appends a new draft and moves the cursor to it. Forward history is
// kept, but redo past a fresh generation is impossible because the cursor
// always lands on the newest entry.
func (l *Ledger) Generate(draft string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.versions = append(l.versions, draft)
	l.cursor = len(l.versions) - 1
}

// Undo steps the cursor back one version. No-op at the first version.
func (l *Ledger) Undo() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cursor > 0 {
		l.cursor--
	}
	return l.currentLocked()
}

// Redo steps the cursor forward one version. No-op at the last version.
func (l *Ledger) Redo() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cursor < len(l.versions)-1 {
		l.cursor++
	}
	return l.currentLocked()
}

// Current returns the draft at the cursor, or "" for an empty ledger.
func (l *Ledger) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentLocked()
}

func (l *Ledger) currentLocked() string {
	if len(l.versions) == 0 {
		return ""
	}
	return l.versions[l.cursor]
}

// Reset clears all versions, e.g. after a successful send.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.versions = nil
	l.cursor = 0
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.versions)
}

func (l *Ledger) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}
