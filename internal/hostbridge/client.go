package hostbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docshelf/internal/config"
)

const clientSubject = "docshelf-shell"

// Client calls the host process. Transport and authentication failures come back as Go
// errors; failures reported by the host itself come back inside the typed response.
type Client struct {
	baseURL string
	http    *http.Client
	signer  *Signer
}

// NewClient builds a client from the shared host settings.
func NewClient(cfg config.HostConfig) (*Client, error) {
	if err := cfg.ValidateClient(); err != nil {
		return nil, fmt.Errorf("host client config: %w", err)
	}
	return newClient(cfg.URL, NewSigner(cfg.Secret, time.Duration(cfg.TokenTTLSec)*time.Second),
		&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}), nil
}

func newClient(baseURL string, signer *Signer, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, signer: signer}
}

// SaveFile sends name and data to be written to disk.
func (c *Client) SaveFile(ctx context.Context, name string, data []byte) (*SaveResponse, error) {
	var out SaveResponse
	if err := c.post(ctx, RouteSave, SaveRequest{FileName: name, FileData: data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenPath asks the host to open path with the platform default application.
// It returns the host's error message, empty on success.
func (c *Client) OpenPath(ctx context.Context, path string) (string, error) {
	var out OpenPathResponse
	if err := c.post(ctx, RouteOpenPath, OpenPathRequest{Path: path}, &out); err != nil {
		return "", err
	}
	return out.Error, nil
}

// DeleteFile asks the host to remove path. A file that is already gone counts as deleted.
func (c *Client) DeleteFile(ctx context.Context, path string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.post(ctx, RouteDelete, DeleteRequest{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenExternal asks the host to open rawURL in a new browser window.
func (c *Client) OpenExternal(ctx context.Context, rawURL string) (string, error) {
	var out OpenExternalResponse
	if err := c.post(ctx, RouteOpenExternal, OpenExternalRequest{URL: rawURL}, &out); err != nil {
		return "", err
	}
	return out.Error, nil
}

// Ping checks that the host process is up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+RouteHealth, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("host health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("host health: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, route string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", route, err)
	}
	token, err := c.signer.Sign(clientSubject)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("host %s: %w", route, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("host %s: %w", route, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("host %s: status %d: %s", route, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}
	return nil
}
