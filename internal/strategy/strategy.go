// Package strategy defines the storage contract the document manager persists through,
// and its browser, remote and local implementations.
package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"docshelf/internal/hostbridge"
	"docshelf/internal/kv"
	"docshelf/internal/model"
)

// ErrPathNotFound is returned by OpenFile when the document has no recorded location.
var ErrPathNotFound = errors.New("file path not found")

// Strategy persists document metadata and file contents for one backend.
type Strategy interface {
	// SaveDocuments overwrites the stored metadata with the full collection.
	SaveDocuments(ctx context.Context, docs []model.Document) error
	// LoadDocuments returns the stored collection, empty when nothing was saved yet.
	LoadDocuments(ctx context.Context) ([]model.Document, error)
	// UploadFile stores the file contents and reports where they went.
	UploadFile(ctx context.Context, file model.FileUpload) (*model.UploadResult, error)
	// DeleteFile removes the physical file of a document. Callers treat failures as non-fatal.
	DeleteFile(ctx context.Context, documentID string) error
	// OpenFile displays the document's file.
	OpenFile(ctx context.Context, doc model.Document) error
}

// Host is the part of the host process the local strategy needs.
type Host interface {
	SaveFile(ctx context.Context, name string, data []byte) (*hostbridge.SaveResponse, error)
	OpenPath(ctx context.Context, path string) (string, error)
	DeleteFile(ctx context.Context, path string) (*hostbridge.DeleteResponse, error)
}

// Launcher opens a URL in a new top-level browser window.
type Launcher interface {
	OpenExternal(ctx context.Context, rawURL string) (string, error)
}

// Registry holds the strategies configured for this process, in registration order.
type Registry struct {
	names []string
	byKey map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Strategy)}
}

// Register adds s under name, replacing an earlier registration of the same name.
func (r *Registry) Register(name string, s Strategy) {
	if _, ok := r.byKey[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byKey[name] = s
}

func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.byKey[name]
	return s, ok
}

func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func loadSlot(ctx context.Context, store kv.Store, key string) ([]model.Document, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	docs := []model.Document{}
	if !found || len(raw) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return docs, nil
}

func saveSlot(ctx context.Context, store kv.Store, key string, docs []model.Document) error {
	if docs == nil {
		docs = []model.Document{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
