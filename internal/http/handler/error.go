package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/http/middleware"
	"docshelf/internal/service"
	"docshelf/internal/strategy"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response. code is machine-readable
// (INVALID_CATEGORY, NOT_FOUND...), message is safe to show to the user.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeServiceError maps document manager and strategy errors onto the envelope.
// Unrecognized errors come from the storage backend and are reported as fallback.
func writeServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrBusy):
		return writeError(c, fiber.StatusConflict, "BUSY", "another operation is in progress")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrNoFiles):
		return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
	case errors.Is(err, service.ErrInvalidCategory):
		return writeError(c, fiber.StatusBadRequest, "INVALID_CATEGORY", "unknown category")
	case errors.Is(err, service.ErrURLRequired):
		return writeError(c, fiber.StatusBadRequest, "URL_REQUIRED", "url is required")
	case errors.Is(err, service.ErrNothingPending):
		return writeError(c, fiber.StatusNotFound, "NOTHING_PENDING", "no upload is pending")
	case errors.Is(err, service.ErrNotLoaded):
		return writeError(c, fiber.StatusServiceUnavailable, "NOT_LOADED", "documents have not been loaded")
	case errors.Is(err, strategy.ErrPathNotFound):
		return writeError(c, fiber.StatusUnprocessableEntity, "PATH_NOT_FOUND", "file path not found")
	}
	if fallback == "" {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return writeError(c, fiber.StatusBadGateway, fallback, strings.Join(errorMessages(err), "; "))
}

// errorMessages flattens joined errors into one message per failure.
func errorMessages(err error) []string {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range j.Unwrap() {
			out = append(out, errorMessages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
