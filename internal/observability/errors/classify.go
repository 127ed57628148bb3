// Package errors derives low-cardinality error tags for metrics and logs.
package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"strings"

	apperrors "github.com/techmidia/painel/internal/errors"
)

var typeNameReplacer = strings.NewReplacer("*", "", ".", "_")

// Classify tags err: the AppError code when there is one, fixed names for
// context and network failures, and otherwise the innermost error's type
// in lower snake case (errors_errorstring). A nil error has no class.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.GetCode(err) != "":
		return string(apperrors.GetCode(err))
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}

	for inner := goerrors.Unwrap(err); inner != nil; inner = goerrors.Unwrap(err) {
		err = inner
	}
	if name := typeNameReplacer.Replace(strings.ToLower(fmt.Sprintf("%T", err))); name != "" {
		return name
	}
	return "unknown"
}
