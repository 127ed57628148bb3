package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/domain/assistant"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/ports"
)

// AssistantServiceOptions groups dependencies for AssistantService.
type AssistantServiceOptions struct {
	Backend     ports.BackendAPI
	Transcripts ports.TranscriptStore
	Logger      *slog.Logger
}

// AssistantService serves the AI report and the per-session chat.
type AssistantService struct {
	backend     ports.BackendAPI
	transcripts ports.TranscriptStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewAssistantService constructs a new AssistantService.
func NewAssistantService(opts AssistantServiceOptions) *AssistantService {
	if opts.Backend == nil {
		panic("AssistantService requires a backend")
	}
	if opts.Transcripts == nil {
		panic("AssistantService requires a transcript store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantService{
		backend:     opts.Backend,
		transcripts: opts.Transcripts,
		logger:      logger.With("component", "assistant_service"),
		now:         time.Now,
	}
}

// Report fetches GET /assistente-ia/relatorio-completo.
func (s *AssistantService) Report(ctx context.Context, creds apiclient.Credentials) (*assistant.Report, error) {
	var out assistant.Report
	if err := s.backend.Get(ctx, creds, "/assistente-ia/relatorio-completo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transcript returns the session's chat so far.
func (s *AssistantService) Transcript(ctx context.Context, sess *domainauth.Session) ([]assistant.Entry, error) {
	if sess == nil {
		return nil, nil
	}
	return s.transcripts.List(ctx, sess.ID)
}

type questionRequest struct {
	Pergunta string `json:"pergunta"`
}

type answerResponse struct {
	Resposta string `json:"resposta"`
}

// Ask sends one question and returns exactly the two new transcript entries:
// the question, then the answer or the fallback reply.
// A blank question yields no entries and no request. The returned error covers
// transcript persistence only; a failed question shows up as a Failed entry.
func (s *AssistantService) Ask(ctx context.Context, sess *domainauth.Session, question string) ([]assistant.Entry, error) {
	question = strings.TrimSpace(question)
	if question == "" || sess == nil {
		return nil, nil
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	asked := assistant.Entry{Speaker: assistant.SpeakerUser, Text: question, At: s.now()}
	if err := s.transcripts.Append(ctx, sess.ID, ttl, asked); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}

	reply := assistant.Entry{Speaker: assistant.SpeakerAssistant}
	var out answerResponse
	err := s.backend.Post(ctx, Credentials(sess), "/assistente-ia/pergunta", questionRequest{Pergunta: question}, &out)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "assistant question failed", "user", sess.Username, "error", err)
		reply.Text = assistant.FallbackReply
		reply.Failed = true
	case strings.TrimSpace(out.Resposta) == "":
		reply.Text = assistant.FallbackReply
		reply.Failed = true
	default:
		reply.Text = out.Resposta
	}
	reply.At = s.now()

	entries := []assistant.Entry{asked, reply}
	if appendErr := s.transcripts.Append(ctx, sess.ID, ttl, reply); appendErr != nil {
		return entries, fmt.Errorf("append reply: %w", appendErr)
	}
	return entries, nil
}
