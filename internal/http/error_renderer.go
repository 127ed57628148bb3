package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/techmidia/painel/internal/apiclient"
	apperrors "github.com/techmidia/painel/internal/errors"
)

// errorMessage is the text shown to the user for err. Only AppError messages
// (the backend's own wording included) reach the page; anything else becomes
// a generic message.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return apiclient.MessageTimeout
	default:
		return apperrors.UserMessage(err, messageUnexpected)
	}
}

// DetermineErrorStatus maps an error to the HTTP status of a full-page response.
func DetermineErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusInternalServerError
	}
}

// ErrorPage is the view of the standalone error document.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
	Detail  string
}

// renderErrorPage writes the error document, falling back to plain text when
// templates are unavailable. Detail is only shown in dev mode.
func renderErrorPage(w http.ResponseWriter, t *TemplateRenderer, page ErrorPage) {
	if page.Status == 0 {
		page.Status = http.StatusInternalServerError
	}
	if page.Title == "" {
		page.Title = http.StatusText(page.Status)
	}
	if t != nil {
		if err := t.RenderError(w, page.Status, page); err == nil {
			return
		}
	}
	http.Error(w, page.Message, page.Status)
}
