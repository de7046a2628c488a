package strategy

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docshelf/internal/kv"
	"docshelf/internal/metrics"
	"docshelf/internal/model"
	"docshelf/internal/strategy/mocks"
)

// Variants that store files report path-not-found for a document with no recorded location.
func TestOpenFile_NoPathAcrossStrategies(t *testing.T) {
	strategies := map[string]Strategy{
		"remote":  NewRemote(nil, nil, nil, 0, zerolog.Nop()),
		"local":   NewLocal(kv.NewMemory(), new(mocks.MockHost), zerolog.Nop()),
	}
	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.OpenFile(context.Background(), model.Document{ID: "x"}), ErrPathNotFound)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	b := NewBrowser(kv.NewMemory(), zerolog.Nop())
	l := NewLocal(kv.NewMemory(), nil, zerolog.Nop())

	r.Register("local", l)
	r.Register("browser", b)
	r.Register("local", l)

	assert.Equal(t, []string{"local", "browser"}, r.Names())
	got, ok := r.Get("browser")
	assert.True(t, ok)
	assert.Same(t, b, got)
	_, ok = r.Get("remote")
	assert.False(t, ok)
}

func TestInstrumented(t *testing.T) {
	next := new(mocks.MockStrategy)
	m, err := metrics.NewStorage(prometheus.NewRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	s := Instrument("local", next, m, zerolog.New(&buf))

	next.On("LoadDocuments", mock.Anything).Return([]model.Document{{ID: "a"}}, nil)
	next.On("DeleteFile", mock.Anything, "a").Return(errors.New("EBUSY"))

	docs, err := s.LoadDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	err = s.DeleteFile(context.Background(), "a")
	assert.EqualError(t, err, "EBUSY")

	assert.Contains(t, buf.String(), `"operation":"delete_file"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Same(t, next, s.Unwrap())
	next.AssertExpectations(t)
}
