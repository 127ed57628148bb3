package httpx

// PageSpec is one entry of the navigation table.
type PageSpec struct {
	ID        string
	Label     string
	Icon      string
	AdminOnly bool
	// Template is the content template rendered for the page.
	Template string
}

// Path is the URL the menu entry points to.
func (p PageSpec) Path() string { return appPathPrefix + p.ID }

// pages is the navigation table in menu order.
//
//nolint:gochecknoglobals // static read-only lookup
var pages = []PageSpec{
	{ID: PageDashboard, Label: "Dashboard", Icon: "fa-tachometer-alt", Template: "dashboard-content"},
	{ID: PageClientes, Label: "Clientes", Icon: "fa-users", Template: "list-content"},
	{ID: PagePedidos, Label: "Pedidos & Projetos", Icon: "fa-project-diagram", Template: "list-content"},
	{ID: PageDemandas, Label: "Demandas Social Media", Icon: "fa-bullhorn", Template: "list-content"},
	{ID: PageFinanceiro, Label: "Financeiro", Icon: "fa-dollar-sign", Template: "list-content"},
	{ID: PageFornecedores, Label: "Fornecedores", Icon: "fa-truck", Template: "list-content"},
	{ID: PageTabelaPrecos, Label: "Tabela de Preços", Icon: "fa-tags", Template: "list-content"},
	{ID: PageAssistant, Label: "Assistente IA", Icon: "fa-robot", Template: "assistant-content"},
	{ID: PageSettings, Label: "Configurações", Icon: "fa-cog", Template: "settings-content"},
	{ID: PageUsers, Label: "Gerenciar Usuários", Icon: "fa-user-cog", AdminOnly: true, Template: "list-content"},
}

// Pages returns the navigation table in menu order.
func Pages() []PageSpec {
	out := make([]PageSpec, len(pages))
	copy(out, pages)
	return out
}

// PageFor looks up a page by id.
// Unknown ids return a placeholder titled TitleUnknownPage and false.
func PageFor(id string) (PageSpec, bool) {
	for _, p := range pages {
		if p.ID == id {
			return p, true
		}
	}
	return PageSpec{ID: id, Label: TitleUnknownPage}, false
}

// NavItem is a menu entry as rendered.
type NavItem struct {
	PageSpec
	Active bool
}

// NavItems builds the menu for the given page. Exactly one entry is active when
// current is a known page; admin-only entries are hidden from other roles.
func NavItems(current string, isAdmin bool) []NavItem {
	items := make([]NavItem, 0, len(pages))
	for _, p := range pages {
		if p.AdminOnly && !isAdmin {
			continue
		}
		items = append(items, NavItem{PageSpec: p, Active: p.ID == current})
	}
	return items
}
