package hostbridge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/internal/config"
)

type fakeFiles struct {
	saved      map[string][]byte
	opened     []string
	deleted    []string
	external   []string
	failSave   error
	failOpen   error
	failDelete error
}

func (f *fakeFiles) Save(name string, data []byte) (string, error) {
	if f.failSave != nil {
		return "", f.failSave
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[name] = data
	return "/srv/pdf-files/1-" + name, nil
}

func (f *fakeFiles) OpenPath(path string) error {
	if f.failOpen != nil {
		return f.failOpen
	}
	f.opened = append(f.opened, path)
	return nil
}

func (f *fakeFiles) Delete(path string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFiles) OpenExternal(rawURL string) error {
	if !strings.HasPrefix(rawURL, "https://") {
		return errors.New("unsupported url scheme")
	}
	f.external = append(f.external, rawURL)
	return nil
}

func newBridge(t *testing.T, files Files) *Client {
	t.Helper()
	signer := NewSigner(testSecret, time.Minute)

	app := fiber.New()
	RegisterRoutes(app, files, signer, zerolog.Nop())

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return newClient(srv.URL+"/", signer, srv.Client())
}

func TestBridge_SaveFile(t *testing.T) {
	files := &fakeFiles{}
	c := newBridge(t, files)

	resp, err := c.SaveFile(context.Background(), "report.pdf", []byte("%PDF-1.7\x00\xff"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "/srv/pdf-files/1-report.pdf", resp.Path)
	assert.Equal(t, []byte("%PDF-1.7\x00\xff"), files.saved["report.pdf"])
}

func TestBridge_SaveFileFailureIsInResponse(t *testing.T) {
	c := newBridge(t, &fakeFiles{failSave: errors.New("disk full")})

	resp, err := c.SaveFile(context.Background(), "report.pdf", []byte("x"))

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "disk full", resp.Error)
	assert.Empty(t, resp.Path)
}

func TestBridge_OpenPath(t *testing.T) {
	files := &fakeFiles{}
	c := newBridge(t, files)

	msg, err := c.OpenPath(context.Background(), "/srv/pdf-files/1-a.pdf")
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, []string{"/srv/pdf-files/1-a.pdf"}, files.opened)

	files.failOpen = errors.New("file not found")
	msg, err = c.OpenPath(context.Background(), "/nope.pdf")
	require.NoError(t, err)
	assert.Equal(t, "file not found", msg)
}

func TestBridge_DeleteFile(t *testing.T) {
	files := &fakeFiles{}
	c := newBridge(t, files)

	resp, err := c.DeleteFile(context.Background(), "/srv/pdf-files/1-a.pdf")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	files.failDelete = errors.New("outside base directory")
	resp, err = c.DeleteFile(context.Background(), "/etc/passwd")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "outside base directory", resp.Error)
}

func TestBridge_OpenExternal(t *testing.T) {
	files := &fakeFiles{}
	c := newBridge(t, files)

	msg, err := c.OpenExternal(context.Background(), "https://files.example.com/k.pdf?sig=1")
	require.NoError(t, err)
	assert.Empty(t, msg)

	msg, err = c.OpenExternal(context.Background(), "file:///etc/passwd")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
}

func TestBridge_RejectsWrongSecret(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &fakeFiles{}, NewSigner(testSecret, time.Minute), zerolog.Nop())
	srv := httptest.NewServer(adaptor.FiberApp(app))
	defer srv.Close()

	c := newClient(srv.URL, NewSigner("fedcba9876543210", time.Minute), srv.Client())
	_, err := c.SaveFile(context.Background(), "a.pdf", []byte("x"))

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_MissingHeader(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &fakeFiles{}, NewSigner(testSecret, time.Minute), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, RouteSave, strings.NewReader(`{"file_name":"a.pdf"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBridge_Ping(t *testing.T) {
	c := newBridge(t, &fakeFiles{})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	_, err := NewClient(config.HostConfig{URL: "http://127.0.0.1:8765", Secret: "short", TokenTTLSec: 60})
	assert.Error(t, err)

	c, err := NewClient(config.HostConfig{URL: "http://127.0.0.1:8765", Secret: testSecret, TokenTTLSec: 60})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
