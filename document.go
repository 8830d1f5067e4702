package clanko

import (
	"context"
	"strings"
	"time"
)

// Document is a rendered article.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Author      string    `json:"author,omitempty"`
	Date        string    `json:"date,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.Slug == "" {
		return Errorf(EINVALID, "document slug required")
	}
	return nil
}

// dateParts are concatenated, in declared order, into Document.Date.
var dateParts = map[string]bool{
	FieldDayMonth: true,
	FieldYear:     true,
	FieldTime:     true,
}

// Assemble builds a Document from extracted fields and the rendered body.
// Absent optional fields leave their Document field empty.
func Assemble(fields Fields, body string) *Document {
	var date strings.Builder
	for _, f := range fields {
		if f.Found && dateParts[f.Name] {
			date.WriteString(f.Text)
		}
	}

	title := fields.Text(FieldTitle)
	return &Document{
		Title:   title,
		Slug:    Slugify(title),
		Author:  fields.Text(FieldAuthor),
		Date:    date.String(),
		Summary: fields.Text(FieldPerex),
		Body:    body,
	}
}

// slugReplacer maps spaces and path-unsafe characters to underscores.
var slugReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Slugify derives a filesystem-safe base filename from a title.
// Example: "Tesla nestíha" → "tesla_nestíha"
func Slugify(title string) string {
	return slugReplacer.Replace(strings.ToLower(strings.TrimSpace(title)))
}

// FormatDocument renders the document as front matter, an optional summary
// heading and the body.
func FormatDocument(doc *Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(doc.Slug)
	b.WriteString("\n")
	if doc.Author != "" {
		b.WriteString("author: ")
		b.WriteString(doc.Author)
		b.WriteString("\n")
	}
	if doc.Date != "" {
		b.WriteString("date: ")
		b.WriteString(doc.Date)
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	if doc.Summary != "" {
		b.WriteString("# ")
		b.WriteString(doc.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString(doc.Body)
	return b.String()
}

// ArticleService is a local archive of rendered documents.
type ArticleService interface {
	// CreateArticle stores a document, assigning its ID, hash and timestamp.
	CreateArticle(ctx context.Context, doc *Document) error

	// FindArticleByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindArticleByID(ctx context.Context, id string) (*Document, error)

	// FindArticles retrieves documents matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Document, error)
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	SourceURL *string `json:"sourceUrl"`
	Slug      *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
