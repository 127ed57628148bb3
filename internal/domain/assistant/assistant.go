// Package assistant models the AI-assistant report and the chat transcript.
package assistant

import "time"

// Report is the payload of GET /assistente-ia/relatorio-completo.
type Report struct {
	ScoreSaude   float64  `json:"score_saude"`
	AnaliseGeral Analysis `json:"analise_geral"`
	Resumo       any      `json:"resumo,omitempty"`
}

// Analysis groups the generated findings.
type Analysis struct {
	Insights      []Finding        `json:"insights"`
	Alertas       []Finding        `json:"alertas"`
	Recomendacoes []Recommendation `json:"recomendacoes"`
}

// Finding is an insight or an alert.
type Finding struct {
	Tipo      string `json:"tipo"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
}

// InsightClass is the alert style of an insight.
func (f Finding) InsightClass() string {
	if f.Tipo == "success" {
		return "success"
	}
	return "info"
}

// AlertClass is the alert style of an alert.
func (f Finding) AlertClass() string {
	if f.Tipo == "danger" {
		return "danger"
	}
	return "warning"
}

// Recommendation is a suggested action.
type Recommendation struct {
	Titulo     string `json:"titulo"`
	Descricao  string `json:"descricao"`
	Prioridade string `json:"prioridade"`
}

// BadgeClass is the badge style for the recommendation's priority.
func (r Recommendation) BadgeClass() string {
	if r.Prioridade == "alta" {
		return "danger"
	}
	return "warning"
}

// Speaker identifies who wrote a transcript entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Greeting opens every chat panel. It is not part of the stored transcript.
const Greeting = "Olá! Sou seu assistente inteligente. Posso ajudar com análises dos seus dados, " +
	"insights sobre performance e responder perguntas sobre o negócio."

// FallbackReply replaces the assistant's answer when the question fails.
const FallbackReply = "Desculpe, ocorreu um erro ao processar sua pergunta."

// Entry is one message of the append-only transcript.
type Entry struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
	// Failed marks a fallback reply.
	Failed bool `json:"failed,omitempty"`
}

// Label is the prefix shown before the entry text.
func (e Entry) Label() string {
	if e.Speaker == SpeakerUser {
		return "Você:"
	}
	return "Assistente IA:"
}

// IsUser reports whether the entry is the user's question.
func (e Entry) IsUser() bool { return e.Speaker == SpeakerUser }
