package mocks

import (
	"context"
	"time"

	"docshelf/internal/category"
	"docshelf/internal/model"
	"docshelf/internal/service"
	"docshelf/internal/strategy"

	"github.com/stretchr/testify/mock"
)

type MockDocumentManager struct {
	mock.Mock
}

var _ service.DocumentManager = (*MockDocumentManager)(nil)

func (m *MockDocumentManager) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDocumentManager) SetStrategy(ctx context.Context, name string, s strategy.Strategy) error {
	return m.Called(ctx, name, s).Error(0)
}

func (m *MockDocumentManager) StrategyName() string {
	return m.Called().String(0)
}

func (m *MockDocumentManager) Busy() bool {
	return m.Called().Bool(0)
}

func (m *MockDocumentManager) Documents() []model.Document {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Document)
}

func (m *MockDocumentManager) Get(id string) (model.Document, error) {
	args := m.Called(id)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) SetFilter(f service.Filter) {
	m.Called(f)
}

func (m *MockDocumentManager) Filter() service.Filter {
	return m.Called().Get(0).(service.Filter)
}

func (m *MockDocumentManager) Visible() []model.Document {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Document)
}

func (m *MockDocumentManager) GenerateDocumentNumber(cat category.Key, date time.Time) string {
	return m.Called(cat, date).String(0)
}

func (m *MockDocumentManager) ConfirmUpload(ctx context.Context, files []model.FileUpload, cat category.Key) ([]model.Document, error) {
	args := m.Called(ctx, files, cat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentManager) StageUpload(files []model.FileUpload, cat category.Key) error {
	return m.Called(files, cat).Error(0)
}

func (m *MockDocumentManager) Pending() (service.PendingView, bool) {
	args := m.Called()
	return args.Get(0).(service.PendingView), args.Bool(1)
}

func (m *MockDocumentManager) CancelUpload() {
	m.Called()
}

func (m *MockDocumentManager) ConfirmPendingUpload(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentManager) DeleteDocument(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentManager) UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (model.Document, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) AddTag(ctx context.Context, id, tag string) (model.Document, error) {
	args := m.Called(ctx, id, tag)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) RemoveTag(ctx context.Context, id, tag string) (model.Document, error) {
	args := m.Called(ctx, id, tag)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) AddLink(ctx context.Context, id, url, title string) (model.Document, error) {
	args := m.Called(ctx, id, url, title)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) RemoveLink(ctx context.Context, id, linkID string) (model.Document, error) {
	args := m.Called(ctx, id, linkID)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) OpenDocument(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentManager) Select(id string) (model.Document, error) {
	args := m.Called(id)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentManager) Selected() (model.Document, bool) {
	args := m.Called()
	return args.Get(0).(model.Document), args.Bool(1)
}

func (m *MockDocumentManager) ClearSelection() {
	m.Called()
}

func (m *MockDocumentManager) AllTags() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockDocumentManager) CategoryStats() []category.Stat {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]category.Stat)
}

func (m *MockDocumentManager) TotalSize() int64 {
	return m.Called().Get(0).(int64)
}
