// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory.
package repository

import (
	"context"
	"errors"

	"docshelf/internal/model"
)

// ErrNotFound is returned by FindByID when no row matches.
var ErrNotFound = errors.New("document not found")

// DocumentRepository defines data access for document metadata using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// UpsertAll inserts or updates docs by ID in one transaction. It never deletes.
	UpsertAll(ctx context.Context, docs []model.Document) error

	// List returns every stored document, newest upload first.
	List(ctx context.Context) ([]model.Document, error)

	// FindByID returns a document by its ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
