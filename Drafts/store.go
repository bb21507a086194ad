package Drafts

import "sync"

// Store hands out one ledger per user id.
type Store struct {
	mu      sync.Mutex
	ledgers map[uint]*Ledger
}

func NewStore() *Store {
	return &Store{ledgers: make(map[uint]*Ledger)}
}

func (s *Store) ForUser(userId uint) *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, ok := s.ledgers[userId]
	if !ok {
		ledger = NewLedger()
		s.ledgers[userId] = ledger
	}
	return ledger
}

// Drop removes a user's ledger entirely.
func (s *Store) Drop(userId uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, userId)
}
