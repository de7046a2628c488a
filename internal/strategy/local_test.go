package strategy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docshelf/internal/hostbridge"
	"docshelf/internal/kv"
	"docshelf/internal/model"
	"docshelf/internal/strategy/mocks"
)

func TestLocal_UploadFile(t *testing.T) {
	t.Run("returns host path", func(t *testing.T) {
		host := new(mocks.MockHost)
		host.On("SaveFile", mock.Anything, "a.pdf", []byte("%PDF")).
			Return(&hostbridge.SaveResponse{Success: true, Path: "/home/u/pdf-files/1-a.pdf"}, nil)
		l := NewLocal(kv.NewMemory(), host, zerolog.Nop())

		res, err := l.UploadFile(context.Background(), model.FileUpload{Name: "a.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")})

		require.NoError(t, err)
		assert.Equal(t, &model.UploadResult{Name: "a.pdf", Size: 4, ContentType: "application/pdf", StoragePath: "/home/u/pdf-files/1-a.pdf"}, res)
	})

	t.Run("host write failure", func(t *testing.T) {
		host := new(mocks.MockHost)
		host.On("SaveFile", mock.Anything, "a.pdf", mock.Anything).
			Return(&hostbridge.SaveResponse{Success: false, Error: "EACCES: permission denied"}, nil)
		l := NewLocal(kv.NewMemory(), host, zerolog.Nop())

		res, err := l.UploadFile(context.Background(), model.FileUpload{Name: "a.pdf", Content: strings.NewReader("x")})

		assert.ErrorContains(t, err, "EACCES")
		assert.Nil(t, res)
	})

	t.Run("bridge failure", func(t *testing.T) {
		host := new(mocks.MockHost)
		bridgeErr := errors.New("connection refused")
		host.On("SaveFile", mock.Anything, mock.Anything, mock.Anything).Return(nil, bridgeErr)
		l := NewLocal(kv.NewMemory(), host, zerolog.Nop())

		_, err := l.UploadFile(context.Background(), model.FileUpload{Name: "a.pdf", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, bridgeErr)
	})
}

func seedLocal(t *testing.T, docs ...model.Document) (kv.Store, *mocks.MockHost, *Local) {
	t.Helper()
	store := kv.NewMemory()
	host := new(mocks.MockHost)
	l := NewLocal(store, host, zerolog.Nop())
	require.NoError(t, l.SaveDocuments(context.Background(), docs))
	return store, host, l
}

func TestLocal_DeleteFile(t *testing.T) {
	ctx := context.Background()

	t.Run("removes file and record", func(t *testing.T) {
		_, host, l := seedLocal(t, model.Document{ID: "a", StoragePath: "/p/a.pdf"}, model.Document{ID: "b"})
		host.On("DeleteFile", mock.Anything, "/p/a.pdf").Return(&hostbridge.DeleteResponse{Success: true}, nil)

		require.NoError(t, l.DeleteFile(ctx, "a"))

		docs, err := l.LoadDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Document{{ID: "b"}}, docs)
		host.AssertExpectations(t)
	})

	t.Run("record removed even when host delete fails", func(t *testing.T) {
		_, host, l := seedLocal(t, model.Document{ID: "a", StoragePath: "/p/a.pdf"})
		host.On("DeleteFile", mock.Anything, "/p/a.pdf").Return(&hostbridge.DeleteResponse{Success: false, Error: "EBUSY"}, nil)

		err := l.DeleteFile(ctx, "a")
		assert.ErrorContains(t, err, "EBUSY")

		docs, err := l.LoadDocuments(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("legacy local path", func(t *testing.T) {
		_, host, l := seedLocal(t, model.Document{ID: "a", LocalPath: "/old/a.pdf"})
		host.On("DeleteFile", mock.Anything, "/old/a.pdf").Return(&hostbridge.DeleteResponse{Success: true}, nil)

		require.NoError(t, l.DeleteFile(ctx, "a"))
		host.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, host, l := seedLocal(t, model.Document{ID: "a", StoragePath: "/p/a.pdf"})

		require.NoError(t, l.DeleteFile(ctx, "zzz"))
		host.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)

		docs, _ := l.LoadDocuments(ctx)
		assert.Len(t, docs, 1)
	})
}

func TestLocal_OpenFile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		doc       model.Document
		hostMsg   string
		hostErr   error
		wantErr   string
		wantIsErr error
	}{
		{name: "success", doc: model.Document{StoragePath: "/p/a.pdf"}},
		{name: "legacy path", doc: model.Document{LocalPath: "/old/a.pdf"}},
		{name: "host reports error", doc: model.Document{StoragePath: "/p/a.pdf"}, hostMsg: "file not found: /p/a.pdf", wantErr: "file not found"},
		{name: "bridge down", doc: model.Document{StoragePath: "/p/a.pdf"}, hostErr: errors.New("dial tcp"), wantErr: "dial tcp"},
		{name: "no path", doc: model.Document{ID: "a"}, wantIsErr: ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := new(mocks.MockHost)
			host.On("OpenPath", mock.Anything, tt.doc.Path()).Return(tt.hostMsg, tt.hostErr).Maybe()
			l := NewLocal(kv.NewMemory(), host, zerolog.Nop())

			err := l.OpenFile(ctx, tt.doc)
			switch {
			case tt.wantIsErr != nil:
				assert.ErrorIs(t, err, tt.wantIsErr)
				host.AssertNotCalled(t, "OpenPath", mock.Anything, mock.Anything)
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
