package postpage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database of pre-rendered posts. Inside SyncPosts the
// same methods run against the open transaction.
type Store struct {
	db   querier
	conn *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while an import writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, conn: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    html TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
`)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`ALTER TABLE posts ADD COLUMN reading_time TEXT NOT NULL DEFAULT '';`); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
	return nil
}

const postColumns = `id, slug, title, date, description, html, reading_time, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (Post, error) {
	var p Post
	var published int
	if err := r.Scan(&p.ID, &p.Slug, &p.Title, &p.Date, &p.Description, &p.HTML, &p.ReadingTime, &published); err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts, newest first. Posts sharing a date
// are ordered by slug so the sequence is stable across builds.
func (s *Store) ListPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
}

// ListAllPosts returns every post, drafts included, newest first.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

const upsertPost = `INSERT OR REPLACE INTO posts (` + postColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func postArgs(p Post) []any {
	published := 0
	if p.Published {
		published = 1
	}
	return []any{p.ID, p.Slug, p.Title, p.Date, p.Description, p.HTML, p.ReadingTime, published}
}

// SavePost upserts a post.
func (s *Store) SavePost(p Post) error {
	_, err := s.db.Exec(upsertPost, postArgs(p)...)
	return err
}

// SyncPosts makes the stored posts match posts in a single transaction:
// every post is upserted and stored posts whose slug is not among them are
// deleted. It returns the number of posts deleted.
func (s *Store) SyncPosts(posts []Post) (int, error) {
	keep := make(map[string]struct{}, len(posts))
	removed := 0
	err := s.inTx(func(tx *Store) error {
		for _, p := range posts {
			if err := tx.SavePost(p); err != nil {
				return fmt.Errorf("save %s: %w", p.Slug, err)
			}
			keep[p.Slug] = struct{}{}
		}
		stored, err := tx.ListAllPosts()
		if err != nil {
			return err
		}
		for _, p := range stored {
			if _, ok := keep[p.Slug]; ok {
				continue
			}
			if err := tx.DeletePost(p.Slug); err != nil {
				return fmt.Errorf("delete %s: %w", p.Slug, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) inTx(fn func(tx *Store) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}
