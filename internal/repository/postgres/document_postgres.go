package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"docshelf/internal/category"
	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// Tags and links are stored as JSONB columns.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const selectColumns = `id, document_number, category, name, size, upload_date, tags, description, links, last_opened, storage_path`

// UpsertAll inserts or updates every document in one transaction. Rows absent from docs
// are left alone; rows are only removed through Delete.
func (r *DocumentPostgres) UpsertAll(ctx context.Context, docs []model.Document) (err error) {
	if len(docs) == 0 {
		return nil
	}

	const qUpsert = `
		INSERT INTO documents (id, document_number, category, name, size, upload_date, tags, description, links, last_opened, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9::jsonb, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			document_number = EXCLUDED.document_number,
			category        = EXCLUDED.category,
			name            = EXCLUDED.name,
			size            = EXCLUDED.size,
			upload_date     = EXCLUDED.upload_date,
			tags            = EXCLUDED.tags,
			description     = EXCLUDED.description,
			links           = EXCLUDED.links,
			last_opened     = EXCLUDED.last_opened,
			storage_path    = EXCLUDED.storage_path
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, d := range docs {
		tags, links, err := encodeLists(d)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, qUpsert,
			d.ID,
			d.DocumentNumber,
			string(d.Category),
			d.Name,
			d.Size,
			d.UploadDate,
			tags,
			d.Description,
			links,
			nullTime(d),
			d.Path(),
		); err != nil {
			return fmt.Errorf("upsert document %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// List returns all documents ordered by upload date, newest first.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	q := `SELECT ` + selectColumns + ` FROM documents ORDER BY upload_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + selectColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*model.Document, error) {
	var (
		d          model.Document
		cat        string
		tags       []byte
		links      []byte
		lastOpened sql.NullTime
	)
	if err := s.Scan(
		&d.ID,
		&d.DocumentNumber,
		&cat,
		&d.Name,
		&d.Size,
		&d.UploadDate,
		&tags,
		&d.Description,
		&links,
		&lastOpened,
		&d.StoragePath,
	); err != nil {
		return nil, err
	}
	d.Category = category.Key(cat)
	if err := json.Unmarshal(tags, &d.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(links, &d.Links); err != nil {
		return nil, fmt.Errorf("decode links of %s: %w", d.ID, err)
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Links == nil {
		d.Links = []model.DocumentLink{}
	}
	if lastOpened.Valid {
		t := lastOpened.Time
		d.LastOpened = &t
	}
	return &d, nil
}

func encodeLists(d model.Document) (string, string, error) {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	links := d.Links
	if links == nil {
		links = []model.DocumentLink{}
	}
	tb, err := json.Marshal(tags)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}
	lb, err := json.Marshal(links)
	if err != nil {
		return "", "", fmt.Errorf("encode links: %w", err)
	}
	return string(tb), string(lb), nil
}

func nullTime(d model.Document) sql.NullTime {
	if d.LastOpened == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *d.LastOpened, Valid: true}
}
