// Package service contains the document manager: the in-memory owner of the document
// collection that persists every change through the active storage strategy.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docshelf/internal/category"
	"docshelf/internal/model"
	"docshelf/internal/strategy"
)

var (
	ErrBusy            = errors.New("another operation is in progress")
	ErrNotFound        = errors.New("document not found")
	ErrNoFiles         = errors.New("no files to upload")
	ErrInvalidCategory = errors.New("unknown category")
	ErrURLRequired     = errors.New("url is required")
	ErrNothingPending  = errors.New("no upload is pending")
	// ErrNotLoaded is returned for changes attempted before the active strategy loaded.
	ErrNotLoaded = errors.New("documents have not been loaded")
)

// PendingUpload is a staged batch waiting for confirmation.
type PendingUpload struct {
	Category category.Key       `json:"category"`
	Files    []model.FileUpload `json:"-"`
}

// PendingView describes a staged batch without its contents.
type PendingView struct {
	Category   category.Key         `json:"category"`
	Files      []model.UploadResult `json:"files"`
	NextNumber string               `json:"next_document_number"`
}

// DocumentManager is the use-case surface of the document shell.
type DocumentManager interface {
	// Load replaces the collection with what the active strategy returns.
	// Nothing is persisted until a Load has succeeded.
	Load(ctx context.Context) error
	// SetStrategy swaps the active strategy, clears the selection and loads fresh.
	// Previously loaded documents are not migrated.
	SetStrategy(ctx context.Context, name string, s strategy.Strategy) error
	StrategyName() string
	Busy() bool

	Documents() []model.Document
	Get(id string) (model.Document, error)

	SetFilter(f Filter)
	Filter() Filter
	// Visible returns the documents matching the current filter.
	Visible() []model.Document

	// GenerateDocumentNumber previews the number the next document of cat uploaded at date gets.
	GenerateDocumentNumber(cat category.Key, date time.Time) string
	// ConfirmUpload uploads files one at a time and appends a document for each success.
	// Failed files are skipped and reported together in the returned error.
	ConfirmUpload(ctx context.Context, files []model.FileUpload, cat category.Key) ([]model.Document, error)

	StageUpload(files []model.FileUpload, cat category.Key) error
	Pending() (PendingView, bool)
	CancelUpload()
	ConfirmPendingUpload(ctx context.Context) ([]model.Document, error)

	// DeleteDocument removes the file (best effort) and the record. Unknown ids are a no-op.
	DeleteDocument(ctx context.Context, id string) error
	UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (model.Document, error)
	AddTag(ctx context.Context, id, tag string) (model.Document, error)
	RemoveTag(ctx context.Context, id, tag string) (model.Document, error)
	AddLink(ctx context.Context, id, url, title string) (model.Document, error)
	RemoveLink(ctx context.Context, id, linkID string) (model.Document, error)
	// OpenDocument opens the file and stamps last_opened on success.
	OpenDocument(ctx context.Context, id string) error

	Select(id string) (model.Document, error)
	Selected() (model.Document, bool)
	ClearSelection()

	AllTags() []string
	CategoryStats() []category.Stat
	TotalSize() int64
}

// Option configures a document manager.
type Option func(*documentManager)

// WithClock sets the time source used for upload dates and link timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *documentManager) { m.now = now }
}

// WithIDGenerator sets the generator for document and link ids.
func WithIDGenerator(gen func() string) Option {
	return func(m *documentManager) { m.newID = gen }
}

// WithCategories sets the category registry used for validation and numbering.
func WithCategories(reg *category.Registry) Option {
	return func(m *documentManager) { m.categories = reg }
}

type documentManager struct {
	mu           sync.RWMutex
	strategy     strategy.Strategy
	strategyName string
	docs         []model.Document
	filter       Filter
	selected     *model.Document
	pending      *PendingUpload
	loaded       bool

	// busy rejects a second user action while one is outstanding; it does not queue.
	busy atomic.Bool

	categories *category.Registry
	now        func() time.Time
	newID      func() string
	log        zerolog.Logger
}

// NewDocumentManager constructs a manager bound to strategy s. Call Load before use.
func NewDocumentManager(name string, s strategy.Strategy, log zerolog.Logger, opts ...Option) DocumentManager {
	m := &documentManager{
		strategy:     s,
		strategyName: name,
		docs:         []model.Document{},
		filter:       DefaultFilter(),
		categories:   category.Default(),
		now:          time.Now,
		newID:        newID,
		log:          log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// newID returns a time-ordered UUID (timestamp plus random bits).
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (m *documentManager) begin() (func(), error) {
	if !m.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return func() { m.busy.Store(false) }, nil
}

func (m *documentManager) Busy() bool {
	return m.busy.Load()
}

func (m *documentManager) active() strategy.Strategy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.strategy
}

func (m *documentManager) snapshot() []model.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneDocs(m.docs)
}

func (m *documentManager) Load(ctx context.Context) error {
	done, err := m.begin()
	if err != nil {
		return err
	}
	defer done()
	return m.load(ctx)
}

func (m *documentManager) load(ctx context.Context) error {
	docs, err := m.active().LoadDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if docs == nil {
		docs = []model.Document{}
	}
	m.mu.Lock()
	m.docs = docs
	m.loaded = true
	m.mu.Unlock()
	m.log.Info().Int("count", len(docs)).Str("strategy", m.StrategyName()).Msg("documents loaded")
	return nil
}

func (m *documentManager) SetStrategy(ctx context.Context, name string, s strategy.Strategy) error {
	done, err := m.begin()
	if err != nil {
		return err
	}
	defer done()

	m.mu.Lock()
	m.strategy = s
	m.strategyName = name
	m.selected = nil
	m.docs = []model.Document{}
	m.loaded = false
	m.mu.Unlock()

	return m.load(ctx)
}

func (m *documentManager) StrategyName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.strategyName
}

func (m *documentManager) Documents() []model.Document {
	return m.snapshot()
}

func (m *documentManager) Get(id string) (model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.docs, id); i >= 0 {
		return m.docs[i].Clone(), nil
	}
	return model.Document{}, ErrNotFound
}

func (m *documentManager) SetFilter(f Filter) {
	if f.Category == "" {
		f.Category = category.All
	}
	if f.Tag == "" {
		f.Tag = AllTags
	}
	m.mu.Lock()
	m.filter = f
	m.mu.Unlock()
}

func (m *documentManager) Filter() Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *documentManager) Visible() []model.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Document, 0, len(m.docs))
	for _, d := range m.docs {
		if m.filter.Match(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

func (m *documentManager) GenerateDocumentNumber(cat category.Key, date time.Time) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return documentNumber(m.categories, m.docs, cat, date)
}

func (m *documentManager) ConfirmUpload(ctx context.Context, files []model.FileUpload, cat category.Key) ([]model.Document, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if !m.categories.Valid(cat) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, cat)
	}
	done, err := m.begin()
	if err != nil {
		return nil, err
	}
	defer done()
	return m.confirmUpload(ctx, files, cat)
}

func (m *documentManager) isLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

func (m *documentManager) confirmUpload(ctx context.Context, files []model.FileUpload, cat category.Key) ([]model.Document, error) {
	if !m.isLoaded() {
		return nil, ErrNotLoaded
	}
	s := m.active()
	next := m.snapshot()
	uploadDate := m.now()

	var (
		accepted []model.Document
		failures []error
	)
	for _, f := range files {
		res, err := s.UploadFile(ctx, f)
		if err != nil {
			m.log.Warn().Err(err).Str("file_name", f.Name).Msg("upload failed")
			failures = append(failures, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		name := res.Name
		if name == "" {
			name = f.Name
		}
		doc := model.Document{
			ID:             m.newID(),
			DocumentNumber: documentNumber(m.categories, next, cat, uploadDate),
			Category:       cat,
			Name:           name,
			Size:           res.Size,
			UploadDate:     uploadDate,
			Tags:           []string{},
			Links:          []model.DocumentLink{},
			StoragePath:    res.StoragePath,
		}
		next = append(next, doc)
		accepted = append(accepted, doc)
	}

	uploadErr := errors.Join(failures...)
	if len(accepted) == 0 {
		return nil, uploadErr
	}

	saveErr := m.commit(ctx, s, next)
	m.log.Info().Int("uploaded", len(accepted)).Int("failed", len(failures)).Str("category", string(cat)).Msg("upload confirmed")
	return cloneDocs(accepted), errors.Join(uploadErr, saveErr)
}

// commit installs docs as the collection and persists it. The in-memory collection is kept
// even when persisting fails.
func (m *documentManager) commit(ctx context.Context, s strategy.Strategy, docs []model.Document) error {
	if !m.isLoaded() {
		return ErrNotLoaded
	}
	m.mu.Lock()
	m.docs = docs
	m.mu.Unlock()

	if err := s.SaveDocuments(ctx, cloneDocs(docs)); err != nil {
		m.log.Error().Err(err).Msg("save documents failed")
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

func (m *documentManager) StageUpload(files []model.FileUpload, cat category.Key) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if !m.categories.Valid(cat) {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, cat)
	}
	m.mu.Lock()
	m.pending = &PendingUpload{Category: cat, Files: slices.Clone(files)}
	m.mu.Unlock()
	return nil
}

func (m *documentManager) Pending() (PendingView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pending == nil {
		return PendingView{}, false
	}
	view := PendingView{
		Category:   m.pending.Category,
		Files:      make([]model.UploadResult, 0, len(m.pending.Files)),
		NextNumber: documentNumber(m.categories, m.docs, m.pending.Category, m.now()),
	}
	for _, f := range m.pending.Files {
		view.Files = append(view.Files, model.UploadResult{Name: f.Name, Size: f.Size, ContentType: f.ContentType})
	}
	return view, true
}

func (m *documentManager) CancelUpload() {
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()
}

// ConfirmPendingUpload uploads the staged batch. The batch is discarded whatever the outcome.
func (m *documentManager) ConfirmPendingUpload(ctx context.Context) ([]model.Document, error) {
	done, err := m.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	m.mu.Lock()
	p := m.pending
	m.pending = nil
	m.mu.Unlock()
	if p == nil {
		return nil, ErrNothingPending
	}
	return m.confirmUpload(ctx, p.Files, p.Category)
}

func (m *documentManager) DeleteDocument(ctx context.Context, id string) error {
	done, err := m.begin()
	if err != nil {
		return err
	}
	defer done()

	docs := m.snapshot()
	i := indexOf(docs, id)
	if i < 0 {
		return nil
	}

	s := m.active()
	if err := s.DeleteFile(ctx, id); err != nil {
		// metadata removal proceeds regardless; the file may be orphaned
		m.log.Warn().Err(err).Str("document_id", id).Msg("physical delete failed")
	}

	next := slices.Delete(docs, i, i+1)
	m.mu.Lock()
	if m.selected != nil && m.selected.ID == id {
		m.selected = nil
	}
	m.mu.Unlock()
	return m.commit(ctx, s, next)
}

func (m *documentManager) UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (model.Document, error) {
	return m.mutate(ctx, id, func(model.Document) (model.DocumentPatch, bool) {
		return patch, true
	})
}

func (m *documentManager) AddTag(ctx context.Context, id, tag string) (model.Document, error) {
	tag = strings.TrimSpace(tag)
	return m.mutate(ctx, id, func(d model.Document) (model.DocumentPatch, bool) {
		if tag == "" || d.HasTag(tag) {
			return model.DocumentPatch{}, false
		}
		return model.DocumentPatch{Tags: append(slices.Clone(d.Tags), tag)}, true
	})
}

func (m *documentManager) RemoveTag(ctx context.Context, id, tag string) (model.Document, error) {
	return m.mutate(ctx, id, func(d model.Document) (model.DocumentPatch, bool) {
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			if t != tag {
				tags = append(tags, t)
			}
		}
		return model.DocumentPatch{Tags: tags}, true
	})
}

func (m *documentManager) AddLink(ctx context.Context, id, url, title string) (model.Document, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.Document{}, ErrURLRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = url
	}
	return m.mutate(ctx, id, func(d model.Document) (model.DocumentPatch, bool) {
		link := model.DocumentLink{ID: m.newID(), URL: url, Title: title, AddedDate: m.now()}
		return model.DocumentPatch{Links: append(slices.Clone(d.Links), link)}, true
	})
}

func (m *documentManager) RemoveLink(ctx context.Context, id, linkID string) (model.Document, error) {
	return m.mutate(ctx, id, func(d model.Document) (model.DocumentPatch, bool) {
		links := make([]model.DocumentLink, 0, len(d.Links))
		for _, l := range d.Links {
			if l.ID != linkID {
				links = append(links, l)
			}
		}
		return model.DocumentPatch{Links: links}, true
	})
}

// mutate applies the patch produced by change to document id and persists the collection.
// change returning false leaves everything untouched.
func (m *documentManager) mutate(ctx context.Context, id string, change func(model.Document) (model.DocumentPatch, bool)) (model.Document, error) {
	done, err := m.begin()
	if err != nil {
		return model.Document{}, err
	}
	defer done()
	return m.apply(ctx, id, change)
}

func (m *documentManager) apply(ctx context.Context, id string, change func(model.Document) (model.DocumentPatch, bool)) (model.Document, error) {
	docs := m.snapshot()
	i := indexOf(docs, id)
	if i < 0 {
		return model.Document{}, ErrNotFound
	}
	patch, ok := change(docs[i])
	if !ok {
		return docs[i], nil
	}
	updated := patch.Apply(docs[i])
	docs[i] = updated

	m.mu.Lock()
	if m.selected != nil && m.selected.ID == id {
		sel := updated.Clone()
		m.selected = &sel
	}
	m.mu.Unlock()

	if err := m.commit(ctx, m.active(), docs); err != nil {
		return updated.Clone(), err
	}
	return updated.Clone(), nil
}

func (m *documentManager) OpenDocument(ctx context.Context, id string) error {
	done, err := m.begin()
	if err != nil {
		return err
	}
	defer done()

	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := m.active().OpenFile(ctx, doc); err != nil {
		return err
	}

	opened := m.now()
	if _, err := m.apply(ctx, id, func(model.Document) (model.DocumentPatch, bool) {
		return model.DocumentPatch{LastOpened: &opened}, true
	}); err != nil {
		m.log.Warn().Err(err).Str("document_id", id).Msg("failed to record last opened")
	}
	return nil
}

func (m *documentManager) Select(id string) (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.docs, id)
	if i < 0 {
		return model.Document{}, ErrNotFound
	}
	sel := m.docs[i].Clone()
	m.selected = &sel
	return sel.Clone(), nil
}

func (m *documentManager) Selected() (model.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected == nil {
		return model.Document{}, false
	}
	return m.selected.Clone(), true
}

func (m *documentManager) ClearSelection() {
	m.mu.Lock()
	m.selected = nil
	m.mu.Unlock()
}

// AllTags returns every distinct tag in first-seen order.
func (m *documentManager) AllTags() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	tags := []string{}
	for _, d := range m.docs {
		for _, t := range d.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// CategoryStats returns every category in registry order with its document count.
func (m *documentManager) CategoryStats() []category.Stat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[category.Key]int)
	for _, d := range m.docs {
		counts[d.Category]++
	}
	cats := m.categories.List()
	stats := make([]category.Stat, 0, len(cats))
	for _, c := range cats {
		stats = append(stats, category.Stat{Category: c, Count: counts[c.Key]})
	}
	return stats
}

func (m *documentManager) TotalSize() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, d := range m.docs {
		total += d.Size
	}
	return total
}

func indexOf(docs []model.Document, id string) int {
	return slices.IndexFunc(docs, func(d model.Document) bool { return d.ID == id })
}

func cloneDocs(docs []model.Document) []model.Document {
	out := make([]model.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
