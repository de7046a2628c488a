package host

import (
	"io"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

// SystemOpener opens files and URLs with the platform default handler
// (xdg-open, open, or the Windows shell).
type SystemOpener struct {
	log zerolog.Logger
}

func NewSystemOpener(log zerolog.Logger) *SystemOpener {
	// keep the launched command's chatter out of our structured output
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &SystemOpener{log: log}
}

func (o *SystemOpener) OpenFile(path string) error {
	o.log.Debug().Str("path", path).Msg("opening file")
	return browser.OpenFile(path)
}

func (o *SystemOpener) OpenURL(rawURL string) error {
	o.log.Debug().Str("url", rawURL).Msg("opening url")
	return browser.OpenURL(rawURL)
}
