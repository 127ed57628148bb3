package ports

import (
	"context"
	"time"

	"github.com/techmidia/painel/internal/domain/assistant"
)

// TranscriptStore keeps the append-only assistant chat per session.
type TranscriptStore interface {
	// Append adds entries to the end of the session's transcript and extends its lifetime to ttl.
	Append(ctx context.Context, sessionID string, ttl time.Duration, entries ...assistant.Entry) error
	List(ctx context.Context, sessionID string) ([]assistant.Entry, error)
	Clear(ctx context.Context, sessionID string) error
}
