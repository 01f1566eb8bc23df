package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// Load hydrates the full ledger state from the database. On a fresh
// database it first seeds the governance row from the configured genesis.
func (s *Store) Load() (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	st := engine.NewState(s.config.Genesis)

	row := s.db.QueryRow(
		`SELECT administrator, paused, locked, price, max_editions, base_uri, script, balance, all_tokens
		 FROM governance WHERE id = 1`,
	)
	var (
		adminStr         string
		paused, locked   bool
		price, balance   int64
		maxEd, allTokens int64
	)
	err := row.Scan(&adminStr, &paused, &locked, &price, &maxEd, &st.BaseURI, &st.Script, &balance, &allTokens)
	if err == sql.ErrNoRows {
		if err := s.seedGenesis(s.config.Genesis); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load governance: %w", err)
	}

	st.Administrator = types.Address(adminStr)
	st.Paused = paused
	st.Locked = locked
	st.Price = types.Mutez(price)
	st.MaxEditions = uint64(maxEd)
	st.Balance = types.Mutez(balance)
	st.AllTokens = uint64(allTokens)

	if err := s.loadTokens(st); err != nil {
		return nil, err
	}
	if err := s.loadOperators(st); err != nil {
		return nil, err
	}

	// Registry keys and the allocator counter must agree; a mismatch means
	// the database was edited out of band.
	if uint64(len(st.Owners)) != st.AllTokens {
		return nil, fmt.Errorf("registry holds %d tokens but counter says %d", len(st.Owners), st.AllTokens)
	}
	return st, nil
}

func (s *Store) loadTokens(st *engine.State) error {
	rows, err := s.db.Query("SELECT token_id, owner, commitment FROM tokens ORDER BY token_id")
	if err != nil {
		return fmt.Errorf("load tokens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			owner      string
			commitment []byte
		)
		if err := rows.Scan(&id, &owner, &commitment); err != nil {
			return fmt.Errorf("scan token: %w", err)
		}
		st.Owners[types.TokenID(id)] = types.Address(owner)
		st.Hashes[types.TokenID(id)] = commitment
	}
	return rows.Err()
}

func (s *Store) loadOperators(st *engine.State) error {
	rows, err := s.db.Query("SELECT owner, operator, token_id FROM operators")
	if err != nil {
		return fmt.Errorf("load operators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			owner, operator string
			id              int64
		)
		if err := rows.Scan(&owner, &operator, &id); err != nil {
			return fmt.Errorf("scan operator: %w", err)
		}
		key := types.OperatorKey{
			Owner:    types.Address(owner),
			Operator: types.Address(operator),
			TokenID:  types.TokenID(id),
		}
		st.Operators[key] = struct{}{}
	}
	return rows.Err()
}
