// Package store caches verification verdicts in SQLite, keyed by a digest
// of the module bytes.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/verify"
)

// ErrNotFound indicates no verdict is stored for a digest.
var ErrNotFound = errors.New("verdict not found")

// Verdict is a stored verification outcome.
type Verdict struct {
	Digest      string
	Valid       bool
	Diagnostics []verify.Diagnostic
	CreatedAt   time.Time
}

// Store is a verdict cache backed by a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite serializes writers; one connection keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS verdicts (
		digest TEXT PRIMARY KEY,
		valid INTEGER NOT NULL,
		report TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the verdict stored for digest, or ErrNotFound.
func (s *Store) Get(ctx context.Context, digest string) (*Verdict, error) {
	var (
		valid   bool
		report  string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT valid, report, created_at FROM verdicts WHERE digest = ?", digest,
	).Scan(&valid, &report, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying verdict: %w", err)
	}

	v := &Verdict{
		Digest:    digest,
		Valid:     valid,
		CreatedAt: time.Unix(created, 0),
	}
	if err := json.Unmarshal([]byte(report), &v.Diagnostics); err != nil {
		return nil, fmt.Errorf("decoding report for %s: %w", digest, err)
	}
	return v, nil
}

// Put stores v, replacing any verdict with the same digest. A zero
// CreatedAt is set to the current time.
func (s *Store) Put(ctx context.Context, v *Verdict) error {
	if v.Digest == "" {
		return errors.New("saving verdict: empty digest")
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	diags := v.Diagnostics
	if diags == nil {
		diags = []verify.Diagnostic{}
	}
	report, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO verdicts (digest, valid, report, created_at) VALUES (?, ?, ?, ?)",
		v.Digest, v.Valid, string(report), v.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving verdict: %w", err)
	}
	return nil
}

// Digest returns the hex SHA-256 of the four sections of m, each preceded by
// its length so that moving bytes between sections changes the digest.
func Digest(m *format.Module) string {
	if m == nil {
		m = &format.Module{}
	}
	h := sha256.New()
	var n [8]byte
	for _, s := range []format.SectionID{format.Directives, format.Code, format.Operands, format.Strings} {
		data := m.Section(s)
		binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
		h.Write(n[:])
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
