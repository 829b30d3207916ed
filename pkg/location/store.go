package location

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS fragments (
		deck       TEXT PRIMARY KEY,
		fragment   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)
`

// Store persists the last fragment per deck, so reopening a deck resumes
// where it was left like a bookmarked URL.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the fragment database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved fragment for deck, or "" if none was saved.
func (s *Store) Load(deck string) (string, error) {
	var fragment string
	err := s.db.QueryRow(`SELECT fragment FROM fragments WHERE deck = ?`, deckKey(deck)).Scan(&fragment)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading fragment: %w", err)
	}
	return fragment, nil
}

// Save records fragment as the last position in deck.
func (s *Store) Save(deck, fragment string) error {
	_, err := s.db.Exec(`
		INSERT INTO fragments (deck, fragment, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(deck) DO UPDATE SET fragment = excluded.fragment, updated_at = excluded.updated_at
	`, deckKey(deck), normalize(fragment), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving fragment: %w", err)
	}
	return nil
}

// Track subscribes to loc and saves every fragment change for deck. Save
// errors go to onError; the returned func stops tracking.
func (s *Store) Track(loc *Location, deck string, onError func(error)) func() {
	return loc.Subscribe(func(fragment string) {
		if err := s.Save(deck, fragment); err != nil && onError != nil {
			onError(err)
		}
	})
}

func deckKey(deck string) string {
	if abs, err := filepath.Abs(deck); err == nil {
		return abs
	}
	return deck
}
