package strategy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"docshelf/internal/kv"
	"docshelf/internal/model"
)

// LocalSlot is the key/value slot the local strategy keeps its collection in.
const LocalSlot = "pdf-documents-local"

// Local keeps metadata in its own slot and hands file contents to the host process,
// which writes them to disk and answers with an absolute path.
type Local struct {
	store kv.Store
	host  Host
	log   zerolog.Logger
}

func NewLocal(store kv.Store, host Host, log zerolog.Logger) *Local {
	return &Local{store: store, host: host, log: log}
}

func (l *Local) SaveDocuments(ctx context.Context, docs []model.Document) error {
	return saveSlot(ctx, l.store, LocalSlot, docs)
}

func (l *Local) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	return loadSlot(ctx, l.store, LocalSlot)
}

func (l *Local) UploadFile(ctx context.Context, file model.FileUpload) (*model.UploadResult, error) {
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	resp, err := l.host.SaveFile(ctx, file.Name, data)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", file.Name, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("save %s: %s", file.Name, resp.Error)
	}
	return &model.UploadResult{
		Name:        file.Name,
		Size:        int64(len(data)),
		ContentType: file.ContentType,
		StoragePath: resp.Path,
	}, nil
}

// DeleteFile removes the file on disk and the record from the local slot. The record is
// removed even when the host could not delete the file; that failure is still returned.
func (l *Local) DeleteFile(ctx context.Context, documentID string) error {
	docs, err := loadSlot(ctx, l.store, LocalSlot)
	if err != nil {
		return err
	}

	var (
		physErr error
		kept    = make([]model.Document, 0, len(docs))
	)
	for _, d := range docs {
		if d.ID != documentID {
			kept = append(kept, d)
			continue
		}
		path := d.Path()
		if path == "" {
			continue
		}
		resp, err := l.host.DeleteFile(ctx, path)
		switch {
		case err != nil:
			physErr = fmt.Errorf("delete %s: %w", path, err)
		case !resp.Success:
			physErr = fmt.Errorf("delete %s: %s", path, resp.Error)
		}
		if physErr != nil {
			l.log.Warn().Err(physErr).Str("document_id", documentID).Msg("physical delete failed")
		}
	}

	if len(kept) == len(docs) {
		return nil
	}
	return errors.Join(physErr, saveSlot(ctx, l.store, LocalSlot, kept))
}

// OpenFile asks the host to open the recorded path. Any error text from the host is a failure.
func (l *Local) OpenFile(ctx context.Context, doc model.Document) error {
	path := doc.Path()
	if path == "" {
		return ErrPathNotFound
	}
	msg, err := l.host.OpenPath(ctx, path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}
