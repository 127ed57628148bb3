package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmidia/painel/internal/domain/assistant"
	"github.com/techmidia/painel/internal/testutil"
)

func TestTranscriptStore_AppendKeepsOrder(t *testing.T) {
	client := testutil.SetupTestRedis(t).Client
	store := NewTranscriptStore(client, "t:")
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, "sess", time.Hour,
		assistant.Entry{Speaker: assistant.SpeakerUser, Text: "Como estão as vendas?", At: at},
		assistant.Entry{Speaker: assistant.SpeakerAssistant, Text: "Bem.", At: at},
	))
	require.NoError(t, store.Append(ctx, "sess", time.Hour,
		assistant.Entry{Speaker: assistant.SpeakerUser, Text: "E os atrasos?", At: at},
		assistant.Entry{Speaker: assistant.SpeakerAssistant, Text: assistant.FallbackReply, At: at, Failed: true},
	))

	entries, err := store.List(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "Como estão as vendas?", entries[0].Text)
	assert.True(t, entries[2].IsUser())
	assert.True(t, entries[3].Failed)

	ttl := client.TTL(ctx, "t:chat:sess").Val()
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestTranscriptStore_Trim(t *testing.T) {
	store := NewTranscriptStore(testutil.SetupTestRedis(t).Client, "trim:")
	ctx := context.Background()

	batch := make([]assistant.Entry, 0, maxTranscriptEntries+10)
	for range maxTranscriptEntries + 10 {
		batch = append(batch, assistant.Entry{Speaker: assistant.SpeakerUser, Text: "q"})
	}
	batch[len(batch)-1].Text = "last"
	require.NoError(t, store.Append(ctx, "s", time.Minute, batch...))

	entries, err := store.List(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, entries, maxTranscriptEntries)
	assert.Equal(t, "last", entries[len(entries)-1].Text)
}

func TestTranscriptStore_Clear(t *testing.T) {
	store := NewTranscriptStore(testutil.SetupTestRedis(t).Client, "")
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s", time.Minute, assistant.Entry{Speaker: assistant.SpeakerUser, Text: "oi"}))
	require.NoError(t, store.Clear(ctx, "s"))

	entries, err := store.List(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTranscriptStore_EmptyInputsAreNoops(t *testing.T) {
	store := NewTranscriptStore(testutil.SetupTestRedis(t).Client, "")
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "", time.Minute, assistant.Entry{Text: "x"}))
	require.NoError(t, store.Append(ctx, "s", time.Minute))

	entries, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, entries)
}
