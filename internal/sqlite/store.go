// Package sqlite implements the durable store for the editions ledger.
// SQLite holds the committed state; the engine mutates an in-memory copy
// and hands each committed call to the store, which persists the change set
// in a single SQL transaction.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/editions/pkg/editions"
	"github.com/mesh-intelligence/editions/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "editions.db"

// Store persists ledger state in a SQLite database.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a new store instance. The store is not attached; call
// Attach with a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Attach opens the database under the config's data directory, creating the
// directory and schema if needed. Returns ErrAlreadyAttached if called
// while attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching a detached store
// succeeds. After Detach, Load and Commit return ErrStoreDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// seedGenesis writes the initial governance row for a fresh database.
func (s *Store) seedGenesis(g types.Genesis) error {
	_, err := s.db.Exec(
		`INSERT INTO governance
		 (id, format, administrator, paused, locked, price, max_editions, base_uri, script, balance, all_tokens)
		 VALUES (1, ?, ?, 0, 0, ?, ?, ?, ?, 0, 0)`,
		editions.LedgerFormat, string(g.Administrator), int64(g.Price),
		int64(g.MaxEditions), []byte(g.BaseURI), []byte{},
	)
	if err != nil {
		return fmt.Errorf("seed genesis: %w", err)
	}
	return nil
}
