package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "github.com/techmidia/painel/internal/errors"
)

// File is one multipart file part.
type File struct {
	// Field is the form field name; the logo endpoint expects "file".
	Field   string
	Name    string
	Content io.Reader
}

// Upload posts file as multipart/form-data to path and decodes the JSON reply into out.
// Observer, error and toast behavior match Do.
func (c *Client) Upload(ctx context.Context, creds Credentials, path string, file File, out any) error {
	field := file.Field
	if field == "" {
		field = "file"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, file.Name)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
		}
	}
	if err := mw.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, MessageRequestFailed)
	}

	return c.call(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Credentials: creds,
		raw:         &buf,
		contentType: mw.FormDataContentType(),
	}, out)
}
