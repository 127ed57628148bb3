package httpx

import (
	"net/http"

	"github.com/techmidia/painel/internal/domain/assistant"
)

// ChatEntriesView is the fragment appended to the chat panel.
type ChatEntriesView struct {
	Entries []assistant.Entry
}

// AssistantHandlers serves the assistant chat.
type AssistantHandlers struct {
	*UIHandlers
}

// Ask sends a question and appends the question and its reply to the chat.
// POST /app/assistente-ia/perguntas.
func (h *AssistantHandlers) Ask(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	entries, err := h.Assistant.Ask(r.Context(), sess, r.PostFormValue("pergunta"))
	if err != nil {
		// The entries were still produced; only their persistence failed.
		h.logger().WarnContext(r.Context(), "saving transcript failed", "error", err)
	}
	if len(entries) == 0 {
		h.respondNoSwap(w, r)
		return
	}
	h.renderFragment(w, r, tmplChatEntries, ChatEntriesView{Entries: entries})
}
