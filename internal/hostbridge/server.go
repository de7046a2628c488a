package hostbridge

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const subjectLocalKey = "host_subject"

// Files is the filesystem surface the host process exposes.
type Files interface {
	// Save writes data and returns the absolute path it was written to.
	Save(name string, data []byte) (string, error)
	// OpenPath opens an existing file with the platform default application.
	OpenPath(path string) error
	// Delete removes a file. A missing file is not an error.
	Delete(path string) error
	// OpenExternal opens an http(s) URL in the default browser.
	OpenExternal(rawURL string) error
}

// Auth rejects requests without a valid bearer token.
func Auth(signer *Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrUnauthorized.Error()})
		}
		sub, err := signer.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrUnauthorized.Error()})
		}
		c.Locals(subjectLocalKey, sub)
		return c.Next()
	}
}

// RegisterRoutes attaches the host operations to app. Failures of the operation itself are
// reported in the response body with status 200; only malformed or unauthenticated
// requests get an error status.
func RegisterRoutes(app *fiber.App, files Files, signer *Signer, log zerolog.Logger) {
	app.Get(RouteHealth, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	v1 := app.Group("/v1", Auth(signer))

	v1.Post("/files/save", func(c *fiber.Ctx) error {
		var req SaveRequest
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.FileName) == "" {
			return fiber.ErrBadRequest
		}
		path, err := files.Save(req.FileName, req.FileData)
		if err != nil {
			log.Error().Err(err).Str("file_name", req.FileName).Msg("save failed")
			return c.JSON(SaveResponse{Success: false, Error: err.Error()})
		}
		log.Info().Str("path", path).Int("size", len(req.FileData)).Msg("file saved")
		return c.JSON(SaveResponse{Success: true, Path: path})
	})

	v1.Post("/files/open", func(c *fiber.Ctx) error {
		var req OpenPathRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := files.OpenPath(req.Path); err != nil {
			log.Warn().Err(err).Str("path", req.Path).Msg("open failed")
			return c.JSON(OpenPathResponse{Error: err.Error()})
		}
		return c.JSON(OpenPathResponse{})
	})

	v1.Post("/files/delete", func(c *fiber.Ctx) error {
		var req DeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := files.Delete(req.Path); err != nil {
			log.Warn().Err(err).Str("path", req.Path).Msg("delete failed")
			return c.JSON(DeleteResponse{Success: false, Error: err.Error()})
		}
		log.Info().Str("path", req.Path).Msg("file deleted")
		return c.JSON(DeleteResponse{Success: true})
	})

	v1.Post("/open-external", func(c *fiber.Ctx) error {
		var req OpenExternalRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := files.OpenExternal(req.URL); err != nil {
			log.Warn().Err(err).Str("url", req.URL).Msg("open external failed")
			return c.JSON(OpenExternalResponse{Error: err.Error()})
		}
		return c.JSON(OpenExternalResponse{})
	})
}
