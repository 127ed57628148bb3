package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/domain/tenant"
	apperrors "github.com/techmidia/painel/internal/errors"
	"github.com/techmidia/painel/internal/ports"
)

const (
	messageFileNotAllowed = "Tipo de arquivo não permitido"
	messageLogoUpload     = "Erro no upload do logo"
	messageInvalidColor   = "Cor inválida"
)

// AllowedLogoExtensions are the logo file types the backend accepts.
var AllowedLogoExtensions = []string{"png", "jpg", "jpeg", "gif", "svg"}

// LogoUpload is a logo file chosen in the settings form.
type LogoUpload struct {
	Name    string
	Content io.Reader
}

// SaveInput is the settings form submission.
type SaveInput struct {
	NomeEmpresa string
	CorPrimaria string
	CorSucesso  string
	CorPerigo   string
	Logo        *LogoUpload
}

type configUpdate struct {
	NomeEmpresa string `json:"nome_empresa"`
	CorPrimaria string `json:"cor_primaria"`
	CorSucesso  string `json:"cor_sucesso"`
	CorPerigo   string `json:"cor_perigo"`
}

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	Backend ports.BackendAPI
}

// TenantService reads and writes the company configuration.
type TenantService struct {
	backend ports.BackendAPI
}

// NewTenantService constructs a new TenantService.
func NewTenantService(opts TenantServiceOptions) *TenantService {
	if opts.Backend == nil {
		panic("TenantService requires a backend")
	}
	return &TenantService{backend: opts.Backend}
}

// Load fetches GET /configuracao, normalized for rendering.
func (s *TenantService) Load(ctx context.Context, creds apiclient.Credentials) (tenant.Config, error) {
	var cfg tenant.Config
	if err := s.backend.Get(ctx, creds, "/configuracao", nil, &cfg); err != nil {
		return tenant.Config{}, err
	}
	return cfg.Normalized(), nil
}

// Save uploads the logo when one was chosen, then updates the configuration.
func (s *TenantService) Save(ctx context.Context, creds apiclient.Credentials, in SaveInput) (tenant.Config, error) {
	update, err := validateSave(in)
	if err != nil {
		return tenant.Config{}, err
	}

	if in.Logo != nil {
		file := apiclient.File{Field: "file", Name: in.Logo.Name, Content: in.Logo.Content}
		if upErr := s.backend.Upload(ctx, creds, "/upload/logo", file, nil); upErr != nil {
			code := apperrors.GetCode(upErr)
			if code == "" {
				code = apperrors.ErrCodeUpstream
			}
			return tenant.Config{}, apperrors.Wrap(upErr, code, messageLogoUpload)
		}
	}

	var cfg tenant.Config
	if putErr := s.backend.Put(ctx, creds, "/configuracao", update, &cfg); putErr != nil {
		return tenant.Config{}, putErr
	}
	return cfg.Normalized(), nil
}

// DefaultColors is the palette restored by the reset-colors action.
func (s *TenantService) DefaultColors() tenant.Config {
	return tenant.Defaults()
}

func validateSave(in SaveInput) (configUpdate, error) {
	update := configUpdate{
		NomeEmpresa: strings.TrimSpace(in.NomeEmpresa),
		CorPrimaria: strings.ToLower(strings.TrimSpace(in.CorPrimaria)),
		CorSucesso:  strings.ToLower(strings.TrimSpace(in.CorSucesso)),
		CorPerigo:   strings.ToLower(strings.TrimSpace(in.CorPerigo)),
	}
	if update.NomeEmpresa == "" {
		update.NomeEmpresa = tenant.DefaultName
	}
	colors := []struct{ field, value string }{
		{"cor_primaria", update.CorPrimaria},
		{"cor_sucesso", update.CorSucesso},
		{"cor_perigo", update.CorPerigo},
	}
	for _, c := range colors {
		if !tenant.ValidColor(c.value) {
			return configUpdate{}, apperrors.ValidationField(c.field, messageInvalidColor)
		}
	}
	if in.Logo != nil && !AllowedLogo(in.Logo.Name) {
		return configUpdate{}, apperrors.ValidationField("logo", messageFileNotAllowed)
	}
	return update, nil
}

// AllowedLogo reports whether name has an accepted image extension.
func AllowedLogo(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	for _, allowed := range AllowedLogoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
