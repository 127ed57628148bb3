// Package core holds the template helpers shared by every dashboard template.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/format"
	"github.com/techmidia/painel/internal/markdown"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template *template.Template
	Markdown *markdown.Renderer
	Now      func() time.Time
}

// Funcs returns a template.FuncMap containing the formatting and rendering helpers.
// Template is read lazily because the func map must exist before parsing.
func Funcs(deps *Deps) template.FuncMap {
	if deps == nil {
		deps = &Deps{}
	}
	funcs := template.FuncMap{
		"currency": format.Currency,
		"number":   format.Number,
		"percent":  format.Percent,
		"date":     format.Date,
		"datetime": format.DateTime,
		"orDash":   format.OrDash,
		"truncate": format.Truncate,
		"since":    sinceFunc(deps),
		"dict":     dict,
		"add":      func(a, b int) int { return a + b },
		"themeCSS": themeCSS,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps *Deps) {
	funcs["renderPage"] = func(name string, data any) (template.HTML, error) {
		if deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := deps.Template.ExecuteTemplate(&buf, name, data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template set, already escaped.
		return template.HTML(buf.String()), nil
	}

	funcs["markdown"] = func(src string) template.HTML {
		if deps.Markdown != nil {
			return deps.Markdown.Render(src)
		}
		return markdown.Render(src)
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func sinceFunc(deps *Deps) func(time.Time) string {
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		now := time.Now
		if deps.Now != nil {
			now = deps.Now
		}
		return format.Relative(t, now())
	}
}

// dict builds a map from alternating keys and values so templates can pass
// several values to a sub-template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %d is %T, want string", i/2, kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

var cssPropertyName = regexp.MustCompile(`^--[a-z][a-z-]*$`)

// themeCSS renders the theme as a :root rule. html/template refuses custom
// property names in CSS context, so the rule is built here from values that
// were normalized to hex colors.
func themeCSS(vars []tenant.CSSVar) template.CSS {
	var b strings.Builder
	b.WriteString(":root {")
	for _, v := range vars {
		if !cssPropertyName.MatchString(v.Name) || !tenant.ValidColor(v.Value) {
			continue
		}
		b.WriteString(" ")
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.Value)
		b.WriteString(";")
	}
	b.WriteString(" }")
	// #nosec G203 - names are fixed identifiers and values validated hex colors.
	return template.CSS(b.String())
}
