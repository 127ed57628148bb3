package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/techmidia/painel/internal/apiclient"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	mockauth "github.com/techmidia/painel/internal/mocks/auth"
	"github.com/techmidia/painel/internal/service"
)

const (
	testCSRFToken    = "test-csrf-token"
	testAdminSession = "sess-admin"
	testUserSession  = "sess-user"
)

// fakeBackend is an in-process backend API that records every call it receives.
type fakeBackend struct {
	srv    *httptest.Server
	mu     sync.Mutex
	calls  []string
	routes map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: defaultBackendRoutes()}
	fb.srv = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	fb.mu.Lock()
	fb.calls = append(fb.calls, key)
	h := fb.routes[key]
	fb.mu.Unlock()
	if h == nil {
		backendJSON(w, http.StatusNotFound, map[string]string{"error": "rota desconhecida"})
		return
	}
	h(w, r)
}

// handle replaces the handler for "METHOD /path".
func (fb *fakeBackend) handle(key string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[key] = h
}

// respond makes key answer with a fixed status and JSON body.
func (fb *fakeBackend) respond(key string, status int, body any) {
	fb.handle(key, func(w http.ResponseWriter, _ *http.Request) { backendJSON(w, status, body) })
}

func (fb *fakeBackend) count(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) apiURL() string { return fb.srv.URL + "/api" }

func backendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func defaultBackendRoutes() map[string]http.HandlerFunc {
	users := map[string]domainauth.User{
		"admin": {ID: 1, Username: "admin", Email: "admin@techmidia.com", Role: domainauth.RoleAdmin, IsActive: true},
		"ana":   {ID: 2, Username: "ana", Email: "ana@techmidia.com", Role: domainauth.RoleUser, IsActive: true},
	}
	var cfgMu sync.Mutex
	cfg := map[string]any{
		"nome_empresa": "Agência Teste",
		"cor_primaria": "#112233",
		"cor_sucesso":  "#28a745",
		"cor_perigo":   "#dc3545",
	}
	fixed := func(status int, body any) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) { backendJSON(w, status, body) }
	}

	return map[string]http.HandlerFunc{
		"POST /login": func(w http.ResponseWriter, r *http.Request) {
			var in struct{ Username, Password string }
			_ = json.NewDecoder(r.Body).Decode(&in)
			u, ok := users[in.Username]
			if !ok || in.Password != "secret" {
				backendJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenciais inválidas"})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "backend-" + u.Username, Path: "/"})
			backendJSON(w, http.StatusOK, map[string]any{"message": "Login realizado com sucesso", "user": u})
		},
		"POST /logout": fixed(http.StatusOK, map[string]string{"message": "Logout realizado"}),
		"GET /configuracao": func(w http.ResponseWriter, _ *http.Request) {
			cfgMu.Lock()
			defer cfgMu.Unlock()
			backendJSON(w, http.StatusOK, cfg)
		},
		"PUT /configuracao": func(w http.ResponseWriter, r *http.Request) {
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			cfgMu.Lock()
			defer cfgMu.Unlock()
			for k, v := range in {
				cfg[k] = v
			}
			backendJSON(w, http.StatusOK, cfg)
		},
		"POST /upload/logo": func(w http.ResponseWriter, _ *http.Request) {
			cfgMu.Lock()
			defer cfgMu.Unlock()
			cfg["logo_path"] = "uploads/logo.png"
			backendJSON(w, http.StatusOK, map[string]string{"logo_path": "uploads/logo.png"})
		},
		"GET /dashboard": fixed(http.StatusOK, map[string]any{
			"kpis": map[string]any{
				"total_clientes":       12,
				"faturamento_mes":      15000.5,
				"pedidos_em_andamento": 4,
				"pedidos_atrasados":    2,
				"receitas_mes":         20000,
				"despesas_mes":         5000,
				"saldo_mes":            15000,
			},
			"graficos": map[string]any{
				"pedidos_por_status":    map[string]int{"Em Andamento": 4, "Concluído": 8},
				"faturamento_historico": []map[string]any{{"mes": "08/2026", "valor": 12000}, {"mes": "09/2026", "valor": 15000.5}},
				"top_clientes":          []map[string]any{{"nome": "Padaria Central", "valor_total": 5400, "qtd_pedidos": 3}},
			},
		}),
		"GET /clientes": fixed(http.StatusOK, []map[string]any{
			{"nome": "Padaria Central", "tipo": "PJ", "cidade": "Recife", "status": "Ativo", "qtd_pedidos": 3, "valor_total": 1500.5},
			{"nome": "Studio Luz", "tipo": "PJ", "cidade": "Olinda", "status": "Inativo", "qtd_pedidos": 0, "valor_total": 0},
		}),
		"GET /pedidos": fixed(http.StatusOK, []map[string]any{}),
		"GET /users": fixed(http.StatusOK, []map[string]any{
			{"username": "admin", "email": "admin@techmidia.com", "role": "admin", "is_active": true},
		}),
		"GET /assistente-ia/relatorio-completo": fixed(http.StatusOK, map[string]any{
			"score_saude": 82,
			"analise_geral": map[string]any{
				"insights":      []map[string]string{{"tipo": "success", "titulo": "Faturamento em alta", "descricao": "Cresceu 10%."}},
				"alertas":       []map[string]string{},
				"recomendacoes": []map[string]string{{"titulo": "Cobrar atrasados", "descricao": "Dois pedidos.", "prioridade": "alta"}},
			},
		}),
		"POST /assistente-ia/pergunta": fixed(http.StatusOK, map[string]string{"resposta": "Seu faturamento cresceu **10%**."}),
		"POST /change-password":        fixed(http.StatusOK, map[string]string{"message": "Senha alterada"}),
	}
}

// testApp is the full router wired to real services, a fake backend and
// in-memory stores.
type testApp struct {
	t           *testing.T
	backend     *fakeBackend
	sessions    *mockauth.MemorySessionStore
	transcripts *mockauth.MemoryTranscriptStore
	handler     http.Handler
}

func newTestApp(t *testing.T, configure ...func(*RouterServices)) *testApp {
	t.Helper()
	backend := newFakeBackend(t)
	client, err := apiclient.New(apiclient.Config{BaseURL: backend.apiURL(), Timeout: 5 * time.Second, Logger: discardLogger()})
	require.NoError(t, err)

	sessions := mockauth.NewMemorySessionStore()
	transcripts := mockauth.NewMemoryTranscriptStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:  client,
		Stores:   service.AuthStores{Sessions: sessions, Transcripts: transcripts},
		Settings: service.AuthSettings{TTL: time.Hour, Logger: discardLogger()},
	})

	services := RouterServices{
		Auth:      auth,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{Backend: client}),
		Resources: service.NewResourceService(service.ResourceServiceOptions{Backend: client}),
		Assistant: service.NewAssistantService(service.AssistantServiceOptions{
			Backend:     client,
			Transcripts: transcripts,
			Logger:      discardLogger(),
		}),
		Tenant:    service.NewTenantService(service.TenantServiceOptions{Backend: client}),
		AssetBase: backend.srv.URL,
		Logger:    discardLogger(),
	}
	for _, fn := range configure {
		fn(&services)
	}

	handler, err := NewRouter(services)
	require.NoError(t, err)
	return &testApp{t: t, backend: backend, sessions: sessions, transcripts: transcripts, handler: handler}
}

// signIn stores a live session as if the user had logged in.
func (a *testApp) signIn(id string, role domainauth.Role) *domainauth.Session {
	a.t.Helper()
	now := time.Now()
	sess := domainauth.Session{
		ID:             id,
		UserID:         7,
		Username:       string(role) + "-user",
		Email:          string(role) + "@techmidia.com",
		Role:           role,
		BackendCookies: []domainauth.StoredCookie{{Name: "session", Value: "backend-" + id}},
		CurrentPage:    domainauth.DefaultPage,
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Hour),
	}
	require.NoError(a.t, a.sessions.Save(a.t.Context(), sess))
	return &sess
}

type requestOption func(*http.Request)

func asHTMX() requestOption {
	return func(r *http.Request) { r.Header.Set("Hx-Request", "true") }
}

func withSession(id string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id}) }
}

// withCSRF sends a matching token cookie and header.
func withCSRF() requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
		r.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	}
}

func (a *testApp) serve(method, target string, body io.Reader, opts ...requestOption) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, target, body)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(target string, opts ...requestOption) *httptest.ResponseRecorder {
	return a.serve(http.MethodGet, target, nil, opts...)
}

// postForm sends an urlencoded form with a valid CSRF token.
func (a *testApp) postForm(target string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withCSRF()(req)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

// responseTriggers decodes the Hx-Trigger header of a response.
func responseTriggers(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	raw := rec.Header().Get("Hx-Trigger")
	if raw == "" {
		return nil
	}
	var events map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &events))
	return events
}

type triggeredToast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func triggeredToasts(t *testing.T, rec *httptest.ResponseRecorder) []triggeredToast {
	t.Helper()
	raw, ok := responseTriggers(t, rec)[EventShowToast]
	if !ok {
		return nil
	}
	var toasts []triggeredToast
	require.NoError(t, json.Unmarshal(raw, &toasts))
	return toasts
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
