package strategy

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"docshelf/internal/metrics"
	"docshelf/internal/model"
)

// Instrumented wraps a Strategy with operation metrics and debug logs.
type Instrumented struct {
	name    string
	next    Strategy
	metrics *metrics.Storage
	log     zerolog.Logger
}

var _ Strategy = (*Instrumented)(nil)

// Instrument decorates s. A nil m disables metrics.
func Instrument(name string, s Strategy, m *metrics.Storage, log zerolog.Logger) *Instrumented {
	return &Instrumented{name: name, next: s, metrics: m, log: log.With().Str("strategy", name).Logger()}
}

// Unwrap returns the decorated strategy.
func (i *Instrumented) Unwrap() Strategy {
	return i.next
}

func (i *Instrumented) SaveDocuments(ctx context.Context, docs []model.Document) error {
	start := time.Now()
	err := i.next.SaveDocuments(ctx, docs)
	i.record("save_documents", start, err, map[string]any{"count": len(docs)})
	return err
}

func (i *Instrumented) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	start := time.Now()
	docs, err := i.next.LoadDocuments(ctx)
	i.record("load_documents", start, err, map[string]any{"count": len(docs)})
	return docs, err
}

func (i *Instrumented) UploadFile(ctx context.Context, file model.FileUpload) (*model.UploadResult, error) {
	start := time.Now()
	res, err := i.next.UploadFile(ctx, file)
	i.record("upload_file", start, err, map[string]any{"file_name": file.Name})
	return res, err
}

func (i *Instrumented) DeleteFile(ctx context.Context, documentID string) error {
	start := time.Now()
	err := i.next.DeleteFile(ctx, documentID)
	i.record("delete_file", start, err, map[string]any{"document_id": documentID})
	return err
}

func (i *Instrumented) OpenFile(ctx context.Context, doc model.Document) error {
	start := time.Now()
	err := i.next.OpenFile(ctx, doc)
	i.record("open_file", start, err, map[string]any{"document_id": doc.ID})
	return err
}

func (i *Instrumented) record(op string, start time.Time, err error, fields map[string]any) {
	elapsed := time.Since(start)
	if i.metrics != nil {
		i.metrics.Observe(i.name, op, err, elapsed)
	}
	ev := i.log.Debug()
	if err != nil {
		ev = i.log.Warn().Err(err)
	}
	ev.Fields(fields).Str("operation", op).Dur("duration", elapsed).Msg("storage operation")
}
