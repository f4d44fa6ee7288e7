package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Schema creates the table read by SQLSource.
const Schema = `CREATE TABLE IF NOT EXISTS courses (
	category VARCHAR(64) NOT NULL,
	slug VARCHAR(191) NOT NULL,
	title VARCHAR(255) NOT NULL,
	front_matter JSON NULL,
	body MEDIUMTEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (category, slug)
)`

const (
	selectAllQuery = `SELECT slug, title, front_matter, body FROM courses WHERE category = ? ORDER BY slug ASC`
	selectOneQuery = `SELECT slug, title, front_matter, body FROM courses WHERE category = ? AND slug = ?`
	deleteQuery    = `DELETE FROM courses WHERE category = ?`
	insertQuery    = `INSERT INTO courses (category, slug, title, front_matter, body) VALUES (?, ?, ?, ?, ?)`
)

// SQLSource reads courses from the MySQL courses table.
type SQLSource struct {
	DB *sql.DB
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// EnsureSchema creates the courses table when it is missing.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create courses table: %w", err)
	}
	return nil
}

// AllFrontMatter returns the published courses in the category ordered by slug.
func (s *SQLSource) AllFrontMatter(ctx context.Context, category string) ([]Course, error) {
	docs, err := s.AllDocuments(ctx, category)
	if err != nil {
		return nil, err
	}
	return Courses(docs), nil
}

// AllDocuments returns the published documents in the category ordered by slug.
func (s *SQLSource) AllDocuments(ctx context.Context, category string) ([]Document, error) {
	rows, err := s.DB.QueryContext(ctx, selectAllQuery, category)
	if err != nil {
		return nil, loadError("query courses", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		if doc.Draft {
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, loadError("iterate courses", err)
	}

	if err := checkUnique(docs, func(i int) string { return "row " + docs[i].Slug }); err != nil {
		return nil, err
	}
	return docs, nil
}

// FileBySlug returns the published document stored under slug.
func (s *SQLSource) FileBySlug(ctx context.Context, category, slug string) (Document, error) {
	row := s.DB.QueryRowContext(ctx, selectOneQuery, category, slug)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
		}
		return Document{}, err
	}
	if doc.Draft {
		return Document{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return doc, nil
}

// Replace swaps every row of the category for docs in one transaction.
func (s *SQLSource) Replace(ctx context.Context, category string, docs []Document) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteQuery, category); err != nil {
		return fmt.Errorf("clear %s: %w", category, err)
	}

	for _, doc := range docs {
		fm, err := frontMatterJSON(doc.Course)
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, category, doc.Slug, doc.Title, fm, doc.Body); err != nil {
			return fmt.Errorf("insert %s: %w", doc.Slug, err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row scanner) (Document, error) {
	var (
		slug, title, body string
		rawFM             sql.NullString
	)
	if err := row.Scan(&slug, &title, &rawFM, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, err
		}
		return Document{}, loadError("scan course", err)
	}

	fm := map[string]interface{}{}
	if rawFM.Valid && rawFM.String != "" {
		if err := json.Unmarshal([]byte(rawFM.String), &fm); err != nil {
			return Document{}, fmt.Errorf("%w: front matter of %q: %v", ErrInvalidRecord, slug, err)
		}
		if fm == nil {
			fm = map[string]interface{}{}
		}
	}
	fm["slug"] = slug
	fm["title"] = title

	c, err := decodeCourse(fm, slug)
	if err != nil {
		return Document{}, err
	}
	return Document{Course: c, Body: body}, nil
}

// frontMatterJSON encodes the fields of c not stored in their own columns.
func frontMatterJSON(c Course) ([]byte, error) {
	fm := make(map[string]interface{}, len(c.Extra)+1)
	for k, v := range c.Extra {
		fm[k] = v
	}
	if c.Draft {
		fm["draft"] = true
	}
	return json.Marshal(fm)
}
