package httpx

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/service"
	"github.com/techmidia/painel/internal/toast"
)

const (
	messageSettingsSaved = "Configurações salvas com sucesso!"
	// multipart overhead allowed on top of the logo itself
	formOverheadBytes = 1 << 20
)

// ThemeView carries the out-of-band theme and brand updates sent after a save.
type ThemeView struct {
	ThemeVars []tenant.CSSVar
	Brand     Brand
}

// ColorFieldsView is the color-picker group of the settings form.
type ColorFieldsView struct {
	Config tenant.Config
}

// SettingsHandlers serves the tenant settings form.
type SettingsHandlers struct {
	*UIHandlers
}

// Save stores the company name, colors and optional logo, then repaints the
// theme and brand in place.
// POST /app/configuracoes.
func (h *SettingsHandlers) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := SessionFrom(ctx)

	in, closeLogo, err := readSettingsForm(w, r)
	if closeLogo != nil {
		defer closeLogo()
	}
	var cfg tenant.Config
	if err == nil {
		cfg, err = h.Tenant.Save(ctx, service.Credentials(sess), in)
	}
	if err != nil {
		if h.expireOnUnauthorized(w, r, sess, err) {
			return
		}
		h.logger().InfoContext(ctx, "saving settings failed", "error", err)
		toast.FromContext(ctx).Error(messageSaveFailed + errorMessage(err))
		h.settingsDone(w, r, nil)
		return
	}

	if refreshed, refreshErr := h.Auth.RefreshTenant(ctx, sess); refreshErr != nil {
		h.logger().WarnContext(ctx, "reloading settings failed", "error", refreshErr)
	} else {
		cfg = refreshed
	}
	toast.FromContext(ctx).Success(messageSettingsSaved)

	h.settingsDone(w, r, &ThemeView{
		ThemeVars: cfg.ThemeVars(),
		Brand:     Brand{Name: cfg.NomeEmpresa, LogoURL: cfg.LogoURL(h.AssetBase)},
	})
}

// settingsDone finishes a save. A nil theme means nothing changed on screen.
func (h *SettingsHandlers) settingsDone(w http.ResponseWriter, r *http.Request, theme *ThemeView) {
	if !IsHTMX(r) {
		redirectWithToasts(w, r, appPathPrefix+PageSettings)
		return
	}
	if theme == nil {
		triggerToasts(w, r)
		HTMX(w).Reswap("none")
		w.WriteHeader(http.StatusOK)
		return
	}
	h.renderFragment(w, r, tmplThemeOOB, theme)
}

// ResetColors returns the color pickers filled with the default palette.
// Nothing is saved until the form is submitted.
// GET /app/configuracoes/cores-padrao.
func (h *SettingsHandlers) ResetColors(w http.ResponseWriter, r *http.Request) {
	h.renderFragment(w, r, tmplColorFields, ColorFieldsView{Config: h.Tenant.DefaultColors()})
}

// readSettingsForm parses the settings submission. The returned func closes
// the uploaded logo and is nil when none was sent.
func readSettingsForm(w http.ResponseWriter, r *http.Request) (service.SaveInput, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return service.SaveInput{}, nil, err
	}

	in := service.SaveInput{
		NomeEmpresa: r.PostFormValue("nome_empresa"),
		CorPrimaria: r.PostFormValue("cor_primaria"),
		CorSucesso:  r.PostFormValue("cor_sucesso"),
		CorPerigo:   r.PostFormValue("cor_perigo"),
	}

	file, header, err := r.FormFile("logo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil, nil
	case err != nil:
		return in, nil, err
	}
	if header.Size == 0 {
		_ = file.Close()
		return in, nil, nil
	}
	in.Logo = &service.LogoUpload{Name: header.Filename, Content: file}
	return in, closeFile(file), nil
}

func closeFile(f multipart.File) func() {
	return func() { _ = f.Close() }
}
