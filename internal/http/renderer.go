package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/techmidia/painel/internal/markdown"
	corefuncs "github.com/techmidia/painel/internal/http/templates/core"
)

// Template names executed by the handlers.
const (
	tmplLayout      = "layout"
	tmplPartial     = "partial"
	tmplErrorLayout = "error-layout"
	tmplChatEntries = "chat-entries"
	tmplColorFields = "settings-colors"
	tmplThemeOOB    = "theme-oob"
)

// TemplateRenderer executes the parsed page, partial and error templates.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

type TemplateRendererConfig struct {
	TemplateFS fs.FS              // required
	Markdown   *markdown.Renderer // nil uses the shared renderer
	Now        func() time.Time   // clock behind relative dates
	Logger     *slog.Logger
}

var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// The funcs need the finished set for dynamic includes, so deps is
	// completed after parsing.
	deps := &corefuncs.Deps{Markdown: cfg.Markdown, Now: cfg.Now}
	t, err := template.New("root").Funcs(corefuncs.Funcs(deps)).ParseFS(cfg.TemplateFS, templatePatterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	deps.Template = t

	return &TemplateRenderer{t: t, logger: logger}, nil
}

func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, status int, data any) error {
	return r.Render(w, status, tmplLayout, data)
}

// RenderPartial writes the content area and its out-of-band swaps.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, status int, data any) error {
	return r.Render(w, status, tmplPartial, data)
}

func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	return r.Render(w, status, tmplErrorLayout, data)
}

var renderBuffers = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Render buffers the named template before writing anything, so a failed
// execution leaves w untouched for an error page. Status 0 means 200.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	buf := renderBuffers.Get().(*bytes.Buffer) //nolint:forcetypeassert // pool only holds buffers
	buf.Reset()
	defer renderBuffers.Put(buf)

	if err := r.t.ExecuteTemplate(buf, name, data); err != nil {
		r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether name was parsed.
func (r *TemplateRenderer) Has(name string) bool {
	return r.t.Lookup(name) != nil
}
