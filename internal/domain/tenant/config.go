// Package tenant models the per-deployment display settings: company name, logo and theme colors.
package tenant

import (
	"regexp"
	"strings"
)

// Config mirrors the backend's /configuracao resource.
type Config struct {
	NomeEmpresa   string `json:"nome_empresa"`
	LogoPath      string `json:"logo_path,omitempty"`
	CorPrimaria   string `json:"cor_primaria"`
	CorSecundaria string `json:"cor_secundaria"`
	CorSucesso    string `json:"cor_sucesso"`
	CorPerigo     string `json:"cor_perigo"`
	CorAviso      string `json:"cor_aviso"`
	CorInfo       string `json:"cor_info"`
	TemaEscuro    bool   `json:"tema_escuro"`
}

const DefaultName = "TechMídia Agência"

// Default theme colors.
const (
	DefaultPrimary   = "#007bff"
	DefaultSecondary = "#6c757d"
	DefaultSuccess   = "#28a745"
	DefaultDanger    = "#dc3545"
	DefaultWarning   = "#ffc107"
	DefaultInfo      = "#17a2b8"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Defaults returns the configuration used before the backend answers.
func Defaults() Config {
	return Config{
		NomeEmpresa:   DefaultName,
		CorPrimaria:   DefaultPrimary,
		CorSecundaria: DefaultSecondary,
		CorSucesso:    DefaultSuccess,
		CorPerigo:     DefaultDanger,
		CorAviso:      DefaultWarning,
		CorInfo:       DefaultInfo,
	}
}

// ValidColor reports whether c is a #rgb or #rrggbb hex color.
func ValidColor(c string) bool {
	return colorPattern.MatchString(c)
}

// Normalized returns a copy where every invalid color falls back to its default
// and a blank name falls back to DefaultName. Logo paths keep only safe relative paths.
func (c Config) Normalized() Config {
	d := Defaults()
	out := c
	out.NomeEmpresa = strings.TrimSpace(out.NomeEmpresa)
	if out.NomeEmpresa == "" {
		out.NomeEmpresa = d.NomeEmpresa
	}
	out.CorPrimaria = colorOr(out.CorPrimaria, d.CorPrimaria)
	out.CorSecundaria = colorOr(out.CorSecundaria, d.CorSecundaria)
	out.CorSucesso = colorOr(out.CorSucesso, d.CorSucesso)
	out.CorPerigo = colorOr(out.CorPerigo, d.CorPerigo)
	out.CorAviso = colorOr(out.CorAviso, d.CorAviso)
	out.CorInfo = colorOr(out.CorInfo, d.CorInfo)
	out.LogoPath = cleanLogoPath(out.LogoPath)
	return out
}

// CSSVar is one live style property applied to the document root.
type CSSVar struct {
	Name  string
	Value string
}

// ThemeVars lists the six theme properties in a stable order.
func (c Config) ThemeVars() []CSSVar {
	n := c.Normalized()
	return []CSSVar{
		{Name: "--primary-color", Value: n.CorPrimaria},
		{Name: "--secondary-color", Value: n.CorSecundaria},
		{Name: "--success-color", Value: n.CorSucesso},
		{Name: "--danger-color", Value: n.CorPerigo},
		{Name: "--warning-color", Value: n.CorAviso},
		{Name: "--info-color", Value: n.CorInfo},
	}
}

// LogoURL resolves the uploaded logo against the backend asset origin.
// It returns "" when no logo is configured.
func (c Config) LogoURL(assetBase string) string {
	p := cleanLogoPath(c.LogoPath)
	if p == "" {
		return ""
	}
	return strings.TrimRight(assetBase, "/") + "/static/" + p
}

func colorOr(c, fallback string) string {
	c = strings.TrimSpace(c)
	if ValidColor(c) {
		return strings.ToLower(c)
	}
	return fallback
}

func cleanLogoPath(p string) string {
	p = strings.TrimLeft(strings.TrimSpace(p), "/")
	if p == "" || strings.Contains(p, "..") || strings.ContainsAny(p, "\\:?#") {
		return ""
	}
	return p
}
