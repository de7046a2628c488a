package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"

	"docshelf/internal/category"
	"docshelf/internal/model"
)

const pdfContentType = "application/pdf"

type patchRequest struct {
	Description *string `json:"description"`
}

func (r patchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.NotNil, validation.Length(0, 4000)),
	)
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (r tagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Tag, validation.Required, validation.Length(1, 64)),
	)
}

type linkRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (r linkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Title, validation.Length(0, 200)),
	)
}

type storageRequest struct {
	Strategy string `json:"strategy"`
}

func (r storageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Strategy, validation.Required),
	)
}

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, dst validation.Validatable) *formError {
	if err := c.BodyParser(dst); err != nil {
		return &formError{fiber.StatusBadRequest, "INVALID_BODY", "invalid request body"}
	}
	if err := dst.Validate(); err != nil {
		return &formError{fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error()}
	}
	return nil
}

// uploadForm reads the multipart "files" and "category" fields. File contents are read into
// memory so the batch outlives the request when staged.
func uploadForm(c *fiber.Ctx) ([]model.FileUpload, category.Key, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "", errFilesRequired
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, "", errFilesRequired
	}

	var cat category.Key
	if v := form.Value["category"]; len(v) > 0 {
		cat = category.Key(strings.ToUpper(strings.TrimSpace(v[0])))
	}

	files := make([]model.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			return nil, "", err
		}
		files = append(files, f)
	}
	return files, cat, nil
}

type formError struct {
	status  int
	code    string
	message string
}

func (e *formError) Error() string { return e.message }

var errFilesRequired = &formError{fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required"}

func readUpload(fh *multipart.FileHeader) (model.FileUpload, error) {
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			ct = pdfContentType
		}
	}
	if ct != pdfContentType {
		return model.FileUpload{}, &formError{fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("%s is not a PDF", fh.Filename)}
	}

	f, err := fh.Open()
	if err != nil {
		return model.FileUpload{}, &formError{fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.FileUpload{}, &formError{fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file"}
	}
	return model.FileUpload{
		Name:        fh.Filename,
		Size:        int64(len(data)),
		ContentType: ct,
		Content:     bytes.NewReader(data),
	}, nil
}

func writeFormError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*formError); ok {
		return writeError(c, fe.status, fe.code, fe.message)
	}
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
}
