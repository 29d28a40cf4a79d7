package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
	"github.com/okian/lexrec/pkg/metrics"
)

const sqliteDriver = "sqlite"

func init() { //nolint:gochecknoinits // bind style for the modernc driver name
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS content (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL DEFAULT '',
	summary       TEXT NOT NULL DEFAULT '',
	body          TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	tags          TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT '',
	author_name   TEXT NOT NULL DEFAULT '',
	views         INTEGER NOT NULL DEFAULT 0,
	likes         INTEGER NOT NULL DEFAULT 0,
	shares        INTEGER NOT NULL DEFAULT 0,
	comment_count INTEGER NOT NULL DEFAULT 0,
	published_at  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_content_category ON content(category, status);
CREATE INDEX IF NOT EXISTS idx_content_published ON content(published_at DESC);
`

const upsertSQL = `
INSERT INTO content (id, title, summary, body, category, tags, status, author_name,
	views, likes, shares, comment_count, published_at)
VALUES (:id, :title, :summary, :body, :category, :tags, :status, :author_name,
	:views, :likes, :shares, :comment_count, :published_at)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	summary = excluded.summary,
	body = excluded.body,
	category = excluded.category,
	tags = excluded.tags,
	status = excluded.status,
	author_name = excluded.author_name,
	views = excluded.views,
	likes = excluded.likes,
	shares = excluded.shares,
	comment_count = excluded.comment_count,
	published_at = excluded.published_at`

const selectColumns = `id, title, summary, body, category, tags, status, author_name,
	views, likes, shares, comment_count, published_at`

// Order clauses mirror MemoryStore ordering.
var orderClauses = map[model.SortKey]string{ //nolint:gochecknoglobals // fixed lookup table
	model.SortRecent:     "published_at DESC, id ASC",
	model.SortEngagement: "(comment_count * 3.0 + likes * 2.0 + shares * 2.0 + views * 0.1) DESC, id ASC",
	model.SortPopular:    "views DESC, likes DESC, id ASC",
}

// contentRow is the database shape of a content item.
type contentRow struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	Summary      string `db:"summary"`
	Body         string `db:"body"`
	Category     string `db:"category"`
	Tags         string `db:"tags"`
	Status       string `db:"status"`
	AuthorName   string `db:"author_name"`
	Views        int    `db:"views"`
	Likes        int    `db:"likes"`
	Shares       int    `db:"shares"`
	CommentCount int    `db:"comment_count"`
	PublishedAt  int64  `db:"published_at"` // unix milliseconds, 0 when unknown
}

func toRow(it model.ContentItem) contentRow {
	var published int64
	if !it.PublishedAt.IsZero() {
		published = it.PublishedAt.UnixMilli()
	}
	return contentRow{
		ID: it.ID, Title: it.Title, Summary: it.Summary, Body: it.Body,
		Category: it.Category, Tags: it.Tags, Status: it.Status, AuthorName: it.AuthorName,
		Views: it.Views, Likes: it.Likes, Shares: it.Shares, CommentCount: it.CommentCount,
		PublishedAt: published,
	}
}

func (r contentRow) item() model.ContentItem {
	var published time.Time
	if r.PublishedAt != 0 {
		published = time.UnixMilli(r.PublishedAt).UTC()
	}
	return model.ContentItem{
		ID: r.ID, Title: r.Title, Summary: r.Summary, Body: r.Body,
		Category: r.Category, Tags: r.Tags, Status: r.Status, AuthorName: r.AuthorName,
		Views: r.Views, Likes: r.Likes, Shares: r.Shares, CommentCount: r.CommentCount,
		PublishedAt: published,
	}
}

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db  *sqlx.DB
	log logger.Logger
}

// OpenSQLite opens (creating if needed) the database at path with WAL mode
// enabled and the content schema in place. Use ":memory:" for a throwaway
// database.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	o := buildOptions(opts)

	db, err := sqlx.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &SQLiteStore{db: db, log: o.log}
	if len(o.seed) > 0 {
		if err := s.Upsert(ctx, o.seed...); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed sqlite store: %w", err)
		}
		s.log.Info(ctx, "sqlite store seeded",
			logger.String("path", path),
			logger.Int("items", len(o.seed)))
	}
	return s, nil
}

// Fetch implements Store.
func (s *SQLiteStore) Fetch(ctx context.Context, q model.Query) (model.Page, error) {
	if err := q.Validate(); err != nil {
		return model.Page{}, err
	}

	var (
		conds []string
		args  []any
	)
	if q.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, q.Category)
	}
	if q.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, q.Status)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM content"+where, args...); err != nil {
		return model.Page{}, fmt.Errorf("count content: %w", err)
	}

	query := "SELECT " + selectColumns + " FROM content" + where + " ORDER BY " + orderClauses[q.SortBy]
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	var rows []contentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return model.Page{}, fmt.Errorf("select content: %w", err)
	}

	items := make([]model.ContentItem, len(rows))
	for i, r := range rows {
		items[i] = r.item()
	}
	return model.Page{Items: items, Total: total}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.ContentItem, error) {
	var r contentRow
	err := s.db.GetContext(ctx, &r, "SELECT "+selectColumns+" FROM content WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContentItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.ContentItem{}, fmt.Errorf("get content %s: %w", id, err)
	}
	return r.item(), nil
}

// Upsert implements Store. Items are written in a single transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, items ...model.ContentItem) error {
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	for _, it := range items {
		if _, err := tx.NamedExecContext(ctx, upsertSQL, toRow(it)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert content %s: %w", it.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateContentItems(n)
	}
	return nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM content"); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
