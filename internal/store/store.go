package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// TokenKey is the key the bearer credential is stored under. The name is
// shared with every other client of this backend.
const TokenKey = "AuthToken"

// Store is the client-side persistence layer: a small SQLite database in
// the user's data directory holding the sealed credential and post drafts.
type Store struct {
	db  *sql.DB
	box *sealBox
}

// Open initializes the store under dataDir, creating the directory, the
// database schema and the sealing key on first use.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "client.db")
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	box, err := openSealBox(filepath.Join(dataDir, "client.key"))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, box: box}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		createKVTable,
		createDraftsTable,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %v", err)
		}
	}

	return nil
}

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const createDraftsTable = `
CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Token returns the stored credential. ok is false when logged out; an
// absent credential is never an error.
func (s *Store) Token() (string, bool) {
	var sealed []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, TokenKey).Scan(&sealed)
	if err != nil {
		return "", false
	}
	token, err := s.box.open(sealed)
	if err != nil {
		// Unreadable credential: treat as logged out.
		return "", false
	}
	return string(token), true
}

// SetToken stores the credential, sealed at rest.
func (s *Store) SetToken(token string) error {
	sealed, err := s.box.seal([]byte(token))
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		TokenKey, sealed,
	)
	return err
}

// ClearToken removes the credential. Clearing an absent credential is a
// no-op.
func (s *Store) ClearToken() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, TokenKey)
	return err
}

// Draft is a locally saved post not yet published.
type Draft struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}

// SaveDraft stores a new draft and returns its id.
func (s *Store) SaveDraft(title, content string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO drafts (id, title, content) VALUES (?, ?, ?)`,
		id, title, content,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetDraft fetches one draft by id.
func (s *Store) GetDraft(id string) (*Draft, error) {
	var d Draft
	err := s.db.QueryRow(`
		SELECT id, title, content, created_at FROM drafts WHERE id = ?`, id,
	).Scan(&d.ID, &d.Title, &d.Content, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDrafts returns all drafts, newest first.
func (s *Store) ListDrafts() ([]Draft, error) {
	rows, err := s.db.Query(`
		SELECT id, title, content, created_at FROM drafts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var d Draft
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDraft removes a draft, typically after publishing it.
func (s *Store) DeleteDraft(id string) error {
	res, err := s.db.Exec(`DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("draft %s not found", id)
	}
	return nil
}
