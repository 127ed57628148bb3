package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/techmidia/painel/internal/errors"
)

// User-facing messages for failures the backend did not describe itself.
const (
	MessageRequestFailed   = "Erro na requisição"
	MessageInvalidResponse = "Resposta inválida do servidor"
	MessageUnreachable     = "Não foi possível conectar ao servidor"
	MessageTimeout         = "Tempo limite excedido"
)

// StatusError records the HTTP status of a failed backend call.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return "backend status " + strconv.Itoa(e.Status)
}

// envelope is the backend's error body: {"error": "..."}.
type envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func statusError(status int, body []byte) error {
	msg := MessageRequestFailed
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if s := strings.TrimSpace(env.Error); s != "" {
			msg = s
		}
	}
	return apperrors.Wrap(&StatusError{Status: status}, codeForStatus(status), msg)
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrCodeForbidden
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return apperrors.ErrCodeValidation
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return apperrors.ErrCodeTimeout
	default:
		return apperrors.ErrCodeUpstream
	}
}

// Status returns the backend HTTP status carried by err, or 0 for transport failures.
func Status(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsUnauthorized reports whether the backend rejected the user's session.
func IsUnauthorized(err error) bool {
	return Status(err) == http.StatusUnauthorized
}
