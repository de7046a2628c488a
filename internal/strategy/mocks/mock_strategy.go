package mocks

import (
	"context"

	"docshelf/internal/hostbridge"
	"docshelf/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) SaveDocuments(ctx context.Context, docs []model.Document) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockStrategy) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockStrategy) UploadFile(ctx context.Context, file model.FileUpload) (*model.UploadResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

func (m *MockStrategy) DeleteFile(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockStrategy) OpenFile(ctx context.Context, doc model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockHost struct {
	mock.Mock
}

func (m *MockHost) SaveFile(ctx context.Context, name string, data []byte) (*hostbridge.SaveResponse, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hostbridge.SaveResponse), args.Error(1)
}

func (m *MockHost) OpenPath(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockHost) DeleteFile(ctx context.Context, path string) (*hostbridge.DeleteResponse, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hostbridge.DeleteResponse), args.Error(1)
}

type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) OpenExternal(ctx context.Context, rawURL string) (string, error) {
	args := m.Called(ctx, rawURL)
	return args.String(0), args.Error(1)
}
