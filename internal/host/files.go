// Package host performs the filesystem operations of the privileged host process.
package host

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docshelf/internal/hostbridge"
	"docshelf/internal/storage"
)

// Opener hands files and URLs to the desktop environment.
type Opener interface {
	OpenFile(path string) error
	OpenURL(rawURL string) error
}

// Files stores uploaded files as "{unix-millis}-{name}" under one base directory.
type Files struct {
	baseDir string
	opener  Opener
	now     func() time.Time
}

var _ hostbridge.Files = (*Files)(nil)

// New resolves baseDir to an absolute path and creates it if missing.
func New(baseDir string, opener Opener) (*Files, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return nil, fmt.Errorf("create base dir: %w", err)
	}
	return &Files{baseDir: abs, opener: opener, now: time.Now}, nil
}

// BaseDir returns the absolute directory files are written to.
func (f *Files) BaseDir() string {
	return f.baseDir
}

func (f *Files) Save(name string, data []byte) (string, error) {
	path := filepath.Join(f.baseDir, storage.ObjectKey(f.now(), name))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

func (f *Files) OpenPath(path string) error {
	if path == "" {
		return errors.New("path is required")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}
	return f.opener.OpenFile(path)
}

func (f *Files) Delete(path string) error {
	abs, err := f.within(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *Files) OpenExternal(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return f.opener.OpenURL(u.String())
}

// within returns the cleaned absolute form of path, refusing anything outside the base directory.
func (f *Files) within(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(f.baseDir, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the storage directory", path)
	}
	return abs, nil
}
