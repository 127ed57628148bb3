package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmidia/painel/internal/apiclient"
	apperrors "github.com/techmidia/painel/internal/errors"
)

// scrape returns the exposition text of r.
func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestBackendObserver_Success(t *testing.T) {
	reg := NewRegistry("painel", false)
	obs := reg.Backend()

	obs.RequestStarted("get", "/clientes")
	assert.Equal(t, int64(1), obs.InFlight())
	assert.Contains(t, scrape(t, reg), "painel_backend_inflight_requests 1")

	obs.RequestFinished(apiclient.RequestOutcome{Method: "get", Path: "/clientes", Status: 200, Duration: 20 * time.Millisecond})
	assert.Zero(t, obs.InFlight())

	out := scrape(t, reg)
	assert.Contains(t, out, "painel_backend_inflight_requests 0")
	assert.Contains(t, out,
		`painel_backend_requests_total{error_class="",method="GET",resource="clientes",result="success",status="200"} 1`)
	assert.Contains(t, out, `painel_backend_request_duration_seconds_count{method="GET",resource="clientes"} 1`)
}

func TestBackendObserver_ErrorLabelsClass(t *testing.T) {
	reg := NewRegistry("painel", false)
	obs := reg.Backend()

	obs.RequestStarted("POST", "/assistente-ia/pergunta")
	obs.RequestFinished(apiclient.RequestOutcome{
		Method: "POST",
		Path:   "/assistente-ia/pergunta",
		Status: 500,
		Err:    apperrors.Upstream("falhou"),
	})

	out := scrape(t, reg)
	assert.Contains(t, out,
		`painel_backend_requests_total{error_class="upstream",method="POST",resource="assistente-ia",result="error",status="500"} 1`)
	assert.NotContains(t, out, "painel_backend_request_duration_seconds_count")
}

func TestResource(t *testing.T) {
	assert.Equal(t, "root", Resource("/"))
	assert.Equal(t, "dashboard", Resource("/dashboard"))
	assert.Equal(t, "upload", Resource("/upload/logo"))
	assert.Equal(t, "clientes", Resource("clientes?status=Ativo"))
}

func TestInstrument(t *testing.T) {
	reg := NewRegistry("painel", false)
	h := reg.Instrument("/metrics")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/app/nada" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/app/clientes", "/app/nada", "/wp-admin/x", "/metrics"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, reg)
	assert.Contains(t, out, `painel_http_requests_total{method="GET",route="app",status="200"} 1`)
	assert.Contains(t, out, `painel_http_requests_total{method="GET",route="app",status="404"} 1`)
	assert.Contains(t, out, `painel_http_requests_total{method="GET",route="other",status="200"} 1`)
	assert.NotContains(t, out, `route="metrics"`)
	assert.Contains(t, out, "painel_http_inflight_requests 0")
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "root", Route("/"))
	assert.Equal(t, "app", Route("/app/financeiro/export.xlsx"))
	assert.Equal(t, "static", Route("/static/js/app.js"))
	assert.Equal(t, "other", Route("/nada/aqui"))
}

func TestNewRegistry_Runtime(t *testing.T) {
	assert.Contains(t, scrape(t, NewRegistry("painel", true)), "go_goroutines")
}
