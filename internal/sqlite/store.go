package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/upvote/pkg/types"
)

// DatabaseFileName is the SQLite file created inside DataDir.
const DatabaseFileName = "upvote.db"

// timeLayout is the column format for all timestamps. Nanosecond
// precision keeps the creation-time tie-break in the ranking exact.
const timeLayout = time.RFC3339Nano

// Store owns the SQLite database and hands out the feature store and
// vote ledger accessors. All mutations run through the single injected
// *sql.DB; there is no ambient connection state.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB
	clock  clockwork.Clock

	features *FeatureStore
	votes    *VoteLedger
}

// New creates a Store using the wall clock. The store is not open;
// call Open with a Config to initialize.
func New() *Store {
	return NewWithClock(clockwork.NewRealClock())
}

// NewWithClock creates a Store with an injected clock. Tests pass a
// fake clock to control created_at/updated_at values.
func NewWithClock(clock clockwork.Clock) *Store {
	return &Store{clock: clock}
}

// Open initializes the store with the given configuration. Creates
// DataDir if it does not exist, opens the database file, and applies
// the schema. Returns ErrAlreadyOpen if already open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
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

	dbPath := filepath.Join(dataDir, DatabaseFileName)
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.open = true
	s.features = &FeatureStore{store: s}
	s.votes = &VoteLedger{store: s}

	return nil
}

// Close releases the database connection. After Close, accessor calls
// return ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.open = false
	s.features = nil
	s.votes = nil

	return nil
}

// Features returns the feature store accessor.
// Returns ErrStoreClosed if the store is not open.
func (s *Store) Features() (*FeatureStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return s.features, nil
}

// Votes returns the vote ledger accessor.
// Returns ErrStoreClosed if the store is not open.
func (s *Store) Votes() (*VoteLedger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return s.votes, nil
}

// Stats reports totals across both tables plus the current top-ranked
// feature, all read from one snapshot.
func (s *Store) Stats() (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats types.Stats
	if !s.open {
		return stats, types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return stats, fmt.Errorf("beginning stats transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRow("SELECT COUNT(*) FROM features").Scan(&stats.TotalFeatures); err != nil {
		return stats, fmt.Errorf("counting features: %w", err)
	}
	if err := tx.QueryRow("SELECT COUNT(*) FROM votes").Scan(&stats.TotalVotes); err != nil {
		return stats, fmt.Errorf("counting votes: %w", err)
	}

	row := tx.QueryRow(rankingQuery + " LIMIT 1")
	top, err := hydrateFeatureWithCount(row)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, fmt.Errorf("querying top feature: %w", err)
	}
	if err == nil {
		stats.TopFeature = &top
	}

	return stats, tx.Commit()
}

// dsn builds the connection string. Foreign key enforcement backs the
// vote cascade; busy_timeout serializes concurrent writers instead of
// failing them with SQLITE_BUSY.
func dsn(dbPath string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + dbPath + "?" + q.Encode()
}

// constraintCode extracts the SQLite extended result code from a driver
// error, or 0 when err is not a constraint violation.
func constraintCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	code := constraintCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY failure.
func isForeignKeyViolation(err error) bool {
	return constraintCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
