package strategy

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"docshelf/internal/kv"
	"docshelf/internal/model"
)

// BrowserSlot is the key/value slot the browser strategy keeps its collection in.
const BrowserSlot = "pdf-documents"

// Browser keeps metadata only. File contents are never persisted, so opening a file
// can only be reported, not displayed.
type Browser struct {
	store kv.Store
	log   zerolog.Logger
}

func NewBrowser(store kv.Store, log zerolog.Logger) *Browser {
	return &Browser{store: store, log: log}
}

func (b *Browser) SaveDocuments(ctx context.Context, docs []model.Document) error {
	return saveSlot(ctx, b.store, BrowserSlot, docs)
}

func (b *Browser) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	return loadSlot(ctx, b.store, BrowserSlot)
}

// UploadFile echoes the file metadata. No storage path is recorded.
func (b *Browser) UploadFile(_ context.Context, file model.FileUpload) (*model.UploadResult, error) {
	size := file.Size
	if size < 0 && file.Content != nil {
		n, err := io.Copy(io.Discard, file.Content)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
		size = n
	}
	return &model.UploadResult{
		Name:        file.Name,
		Size:        size,
		ContentType: file.ContentType,
	}, nil
}

// DeleteFile has nothing to remove.
func (b *Browser) DeleteFile(context.Context, string) error {
	return nil
}

// OpenFile only reports the request.
func (b *Browser) OpenFile(_ context.Context, doc model.Document) error {
	b.log.Info().Str("document_id", doc.ID).Str("name", doc.Name).
		Msg("opening file: browser storage keeps no file contents to display")
	return nil
}
