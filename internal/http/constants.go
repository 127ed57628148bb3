package httpx

// Page identifiers used in routes, templates and navigation.
const (
	PageDashboard    = "dashboard"
	PageClientes     = "clientes"
	PagePedidos      = "pedidos"
	PageDemandas     = "demandas"
	PageFinanceiro   = "financeiro"
	PageFornecedores = "fornecedores"
	PageTabelaPrecos = "tabela-precos"
	PageAssistant    = "assistente-ia"
	PageSettings     = "configuracoes"
	PageUsers        = "usuarios"
)

// User-facing page messages.
const (
	TitleUnknownPage     = "Página"
	MessagePageNotFound  = "Página não encontrada"
	MessageAccessDenied  = "Acesso negado. Apenas administradores."
	MessageLoadingPage   = "Carregando..."
	messageLoadFailed    = "Erro ao carregar página: "
	messageSaveFailed    = "Erro ao salvar configurações: "
	messageTooManyLogins = "Muitas tentativas de login. Tente novamente em instantes."
	messageUnexpected    = "Erro inesperado. Tente novamente."
)

// SessionCookieName carries the dashboard session id.
const SessionCookieName = "session_id"

// Template paths used for loading templates in dev mode and tests.
const (
	TemplatePathFromRoot = "frontend/templates"
	StaticPathFromRoot   = "frontend/static"
)

// Client-side events emitted through HX-Trigger.
const (
	EventShowToast   = "showToast"
	EventNavActivate = "nav:activate"
)

const (
	maxUploadBytes = 5 << 20
	loginPath      = "/login"
	appPathPrefix  = "/app/"
	exportSuffix   = "/export.xlsx"
)
