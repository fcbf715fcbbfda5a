// Package gallery stores exported cards in SQLite.
package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/youruser/cardmaker/internal/cards"
)

// ErrNotFound is returned when no card has the requested id.
var ErrNotFound = errors.New("card not found")

// Card is one exported card. PNG is empty in List results.
type Card struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Series    cards.SeriesID `json:"series"`
	PNG       []byte         `json:"-"`
	Size      int            `json:"size"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Store wraps the SQLite database holding exported cards.
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
	now func() time.Time
}

// NewStore opens (or creates) the database at path, creating its
// directory and schema as needed.
func NewStore(path string, log logrus.FieldLogger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// pragmas go in the DSN so every pooled connection gets them
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{db: db, log: log.WithField("component", "Gallery"), now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("gallery schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    series TEXT NOT NULL,
    png BLOB NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS cards_created_at ON cards (created_at);
`)
	return err
}

// Save stores c under a fresh id and returns it with ID and CreatedAt set.
func (s *Store) Save(ctx context.Context, c Card) (Card, error) {
	if len(c.PNG) == 0 {
		return Card{}, errors.New("gallery: empty card image")
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	c.Size = len(c.PNG)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (id, title, series, png, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Title, string(c.Series), c.PNG, c.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Card{}, fmt.Errorf("save card: %w", err)
	}
	s.log.WithFields(logrus.Fields{"id": c.ID, "series": c.Series, "size_kb": c.Size / 1024}).Info("card saved")
	return c, nil
}

// Get returns the card with the given id, image included.
func (s *Store) Get(ctx context.Context, id string) (Card, error) {
	var c Card
	var series, created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, series, png, created_at FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Title, &series, &c.PNG, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Card{}, ErrNotFound
	}
	if err != nil {
		return Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	c.Series = cards.SeriesID(series)
	c.Size = len(c.PNG)
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return c, nil
}

// List returns up to limit cards, newest first, without their images.
// A limit <= 0 returns every card.
func (s *Store) List(ctx context.Context, limit int) ([]Card, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, series, length(png), created_at FROM cards ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Card{}
	for rows.Next() {
		var c Card
		var series, created string
		if err := rows.Scan(&c.ID, &c.Title, &series, &c.Size, &created); err != nil {
			return nil, err
		}
		c.Series = cards.SeriesID(series)
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes the card with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.WithField("id", id).Info("card deleted")
	return nil
}
