package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/clanko"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ clanko.ArticleService = (*ArticleService)(nil)

// ArticleService implements clanko.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent returns the hex xxHash of content.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

const articleColumns = "id, source_url, title, slug, author, date, summary, body, content_hash, fetched_at"

// CreateArticle stores doc, assigning its ID, content hash and fetch time.
// The hash covers the formatted document, front matter included.
func (s *ArticleService) CreateArticle(ctx context.Context, doc *clanko.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	doc.ContentHash = hashContent(clanko.FormatDocument(doc))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, doc.Slug, doc.Author, doc.Date, doc.Summary, doc.Body,
		doc.ContentHash, formatTime(doc.FetchedAt))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*clanko.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)

	doc, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clanko.Errorf(clanko.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter clanko.ArticleFilter) ([]*clanko.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*clanko.Document
	for rows.Next() {
		doc, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*clanko.Document, error) {
	var doc clanko.Document
	var fetchedAt string

	if err := row.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Slug, &doc.Author, &doc.Date,
		&doc.Summary, &doc.Body, &doc.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	doc.FetchedAt, err = parseTime(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
