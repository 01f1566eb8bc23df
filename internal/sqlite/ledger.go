package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// Engine loads the persisted state and returns an engine whose commits are
// written back through this store.
func (s *Store) Engine(opts types.Options) (*engine.Engine, error) {
	st, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger state: %w", err)
	}
	return engine.New(st, opts, s.Commit), nil
}

// JournalEntry is one committed call as recorded in the journal.
type JournalEntry struct {
	EntryID           string    `json:"entry_id"`
	CommittedAt       time.Time `json:"committed_at"`
	Minted            int       `json:"minted"`
	OwnersChanged     int       `json:"owners_changed"`
	OperatorsAdded    int       `json:"operators_added"`
	OperatorsRemoved  int       `json:"operators_removed"`
	GovernanceChanged bool      `json:"governance_changed"`
}

// Journal returns committed calls in commit order, oldest first.
func (s *Store) Journal() ([]JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := s.db.Query(
		`SELECT entry_id, committed_at, minted, owners_changed, operators_added, operators_removed, governance_changed
		 FROM journal ORDER BY entry_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e  JournalEntry
			at string
		)
		if err := rows.Scan(&e.EntryID, &at, &e.Minted, &e.OwnersChanged,
			&e.OperatorsAdded, &e.OperatorsRemoved, &e.GovernanceChanged); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if e.CommittedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("parse journal timestamp: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
