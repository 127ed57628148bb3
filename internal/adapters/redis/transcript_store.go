package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techmidia/painel/internal/domain/assistant"
	"github.com/techmidia/painel/internal/ports"
)

const (
	transcriptSegment = "chat:"
	// maxTranscriptEntries caps a transcript; older entries are trimmed first.
	maxTranscriptEntries = 200
)

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore keeps each session's chat as a Redis list of JSON entries.
type TranscriptStore struct {
	client redis.UniversalClient
	prefix string
}

// NewTranscriptStore creates a transcript store whose keys are prefix + "chat:" + session id.
func NewTranscriptStore(client redis.UniversalClient, prefix string) *TranscriptStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &TranscriptStore{client: client, prefix: prefix + transcriptSegment}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID string, ttl time.Duration, entries ...assistant.Entry) error {
	if sessionID == "" || len(entries) == 0 {
		return nil
	}

	values := make([]any, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal transcript entry: %w", err)
		}
		values = append(values, raw)
	}

	key := s.prefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -maxTranscriptEntries, -1)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis append transcript: %w", err)
	}
	return nil
}

func (s *TranscriptStore) List(ctx context.Context, sessionID string) ([]assistant.Entry, error) {
	if sessionID == "" {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, s.prefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list transcript: %w", err)
	}

	out := make([]assistant.Entry, 0, len(raw))
	for _, item := range raw {
		var e assistant.Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *TranscriptStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
