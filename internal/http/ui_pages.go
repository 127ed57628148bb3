package httpx

import (
	"net/http"

	"github.com/techmidia/painel/internal/domain/assistant"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/domain/dashboard"
	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/service"
)

// DashboardView is the content of the dashboard page.
type DashboardView struct {
	*dashboard.Dashboard
	BillingChart dashboard.Chart
	StatusChart  dashboard.Chart
}

// FilterField is one input of a list page's filter bar.
type FilterField struct {
	Name  string
	Label string
	Value string
	Type  string
}

// ListView is the content of a backend collection page.
type ListView struct {
	Page         PageSpec
	Table        *service.Table
	Filters      []FilterField
	ExportURL    string
	EmptyMessage string
}

// AssistantView is the content of the assistant page.
type AssistantView struct {
	Report   *assistant.Report
	Greeting string
	Entries  []assistant.Entry
}

// SettingsView is the content of the settings page.
type SettingsView struct {
	Config   tenant.Config
	LogoURL  string
	Defaults tenant.Config
}

//nolint:gochecknoglobals // static read-only lookup
var filterLabels = map[string]string{
	"status":        "Status",
	"tipo":          "Tipo",
	"cidade":        "Cidade",
	"tipo_servico":  "Serviço",
	"responsavel":   "Responsável",
	"cliente_id":    "Cliente (ID)",
	"tipo_arte":     "Tipo de Arte",
	"prioridade":    "Prioridade",
	"categoria":     "Categoria",
	"data_inicio":   "Data inicial",
	"data_fim":      "Data final",
	"fornecedor_id": "Fornecedor (ID)",
	"ativo":         "Ativo",
}

//nolint:gochecknoglobals // static read-only lookup
var filterTypes = map[string]string{
	"data_inicio": "date",
	"data_fim":    "date",
}

// fetchPage loads the content of a known page from the backend.
func (h *UIHandlers) fetchPage(r *http.Request, sess *domainauth.Session, page PageSpec) (any, error) {
	ctx := r.Context()
	creds := service.Credentials(sess)

	switch page.ID {
	case PageDashboard:
		d, err := h.Dashboard.Load(ctx, creds)
		if err != nil {
			return nil, err
		}
		return DashboardView{Dashboard: d, BillingChart: d.BillingChart(), StatusChart: d.StatusChart()}, nil

	case PageAssistant:
		report, err := h.Assistant.Report(ctx, creds)
		if err != nil {
			return nil, err
		}
		entries, err := h.Assistant.Transcript(ctx, sess)
		if err != nil {
			// The report is still worth showing with an empty chat.
			h.logger().WarnContext(ctx, "loading transcript failed", "error", err)
		}
		return AssistantView{Report: report, Greeting: assistant.Greeting, Entries: entries}, nil

	case PageSettings:
		cfg, err := h.Tenant.Load(ctx, creds)
		if err != nil {
			return nil, err
		}
		return SettingsView{
			Config:   cfg,
			LogoURL:  cfg.LogoURL(h.AssetBase),
			Defaults: h.Tenant.DefaultColors(),
		}, nil
	}

	spec, ok := service.Resource(page.ID)
	if !ok {
		return nil, nil
	}
	query := r.URL.Query()
	table, err := h.Resources.List(ctx, creds, spec, query)
	if err != nil {
		return nil, err
	}
	view := ListView{
		Page:         page,
		Table:        table,
		Filters:      filterFields(spec, query),
		ExportURL:    page.Path() + exportSuffix,
		EmptyMessage: service.MessageEmptyList,
	}
	if fq := spec.FilterQuery(query); fq != nil {
		view.ExportURL += "?" + fq.Encode()
	}
	return view, nil
}

func filterFields(spec service.ResourceSpec, query map[string][]string) []FilterField {
	if len(spec.Filters) == 0 {
		return nil
	}
	fields := make([]FilterField, 0, len(spec.Filters))
	for _, name := range spec.Filters {
		f := FilterField{Name: name, Label: filterLabels[name], Type: filterTypes[name]}
		if f.Label == "" {
			f.Label = name
		}
		if f.Type == "" {
			f.Type = "text"
		}
		if v := query[name]; len(v) > 0 {
			f.Value = v[0]
		}
		fields = append(fields, f)
	}
	return fields
}
