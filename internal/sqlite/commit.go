package sqlite

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// Commit persists the difference between the previous and next ledger state
// in one SQL transaction, and appends a journal row describing the change
// set. A failed commit leaves the database at the previous state, which
// aborts the originating call.
func (s *Store) Commit(prev, next *engine.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	var minted, ownersChanged, opsAdded, opsRemoved int

	// Newly minted tokens occupy the consecutive range the allocator
	// advanced over.
	for id := prev.AllTokens; id < next.AllTokens; id++ {
		tokenID := types.TokenID(id)
		_, err := tx.Exec(
			"INSERT INTO tokens (token_id, owner, commitment) VALUES (?, ?, ?)",
			int64(id), string(next.Owners[tokenID]), []byte(next.Hashes[tokenID]),
		)
		if err != nil {
			return fmt.Errorf("insert token %d: %w", id, err)
		}
		minted++
	}

	// Ownership changes among previously issued tokens.
	for id := uint64(0); id < prev.AllTokens; id++ {
		tokenID := types.TokenID(id)
		if prev.Owners[tokenID] == next.Owners[tokenID] {
			continue
		}
		_, err := tx.Exec(
			"UPDATE tokens SET owner = ? WHERE token_id = ?",
			string(next.Owners[tokenID]), int64(id),
		)
		if err != nil {
			return fmt.Errorf("update token %d owner: %w", id, err)
		}
		ownersChanged++
	}

	// Operator grant membership changes, both directions.
	for key := range next.Operators {
		if _, ok := prev.Operators[key]; ok {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO operators (owner, operator, token_id) VALUES (?, ?, ?)",
			string(key.Owner), string(key.Operator), int64(key.TokenID),
		)
		if err != nil {
			return fmt.Errorf("insert operator grant: %w", err)
		}
		opsAdded++
	}
	for key := range prev.Operators {
		if _, ok := next.Operators[key]; ok {
			continue
		}
		_, err := tx.Exec(
			"DELETE FROM operators WHERE owner = ? AND operator = ? AND token_id = ?",
			string(key.Owner), string(key.Operator), int64(key.TokenID),
		)
		if err != nil {
			return fmt.Errorf("delete operator grant: %w", err)
		}
		opsRemoved++
	}

	governanceChanged := governanceDiffers(prev, next)
	if governanceChanged || minted > 0 {
		_, err := tx.Exec(
			`UPDATE governance SET administrator = ?, paused = ?, locked = ?, price = ?,
			 max_editions = ?, base_uri = ?, script = ?, balance = ?, all_tokens = ?
			 WHERE id = 1`,
			string(next.Administrator), next.Paused, next.Locked, int64(next.Price),
			int64(next.MaxEditions), next.BaseURI, next.Script, int64(next.Balance),
			int64(next.AllTokens),
		)
		if err != nil {
			return fmt.Errorf("update governance: %w", err)
		}
	}

	if err := appendJournal(tx, minted, ownersChanged, opsAdded, opsRemoved, governanceChanged); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger change: %w", err)
	}
	return nil
}

// governanceDiffers reports whether any governance field or the held
// balance changed between the two states.
func governanceDiffers(prev, next *engine.State) bool {
	return prev.Administrator != next.Administrator ||
		prev.Paused != next.Paused ||
		prev.Locked != next.Locked ||
		prev.Price != next.Price ||
		prev.MaxEditions != next.MaxEditions ||
		prev.Balance != next.Balance ||
		!bytes.Equal(prev.BaseURI, next.BaseURI) ||
		!bytes.Equal(prev.Script, next.Script)
}

// appendJournal records one committed call. Entry IDs are UUID v7 so the
// journal sorts by creation time.
func appendJournal(tx *sql.Tx, minted, ownersChanged, opsAdded, opsRemoved int, governanceChanged bool) error {
	_, err := tx.Exec(
		`INSERT INTO journal
		 (entry_id, committed_at, minted, owners_changed, operators_added, operators_removed, governance_changed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		journalEntryID(), time.Now().UTC().Format(time.RFC3339),
		minted, ownersChanged, opsAdded, opsRemoved, governanceChanged,
	)
	if err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// journalEntryID generates a UUID v7, falling back to v4 if the clock-based
// generator fails.
func journalEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
