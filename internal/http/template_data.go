package httpx

import (
	"net/http"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/toast"
)

// UserView is the signed-in user as shown in the header.
type UserView struct {
	Username string
	Email    string
	Role     string
	IsAdmin  bool
}

// Brand is the tenant identity shown in the sidebar.
type Brand struct {
	Name    string
	LogoURL string
}

// PageData is the data handed to the layout and partial templates.
type PageData struct {
	Title       string
	CurrentPage string
	Template    string
	Nav         []NavItem
	User        *UserView
	Brand       Brand
	ThemeVars   []tenant.CSSVar
	CSRFToken   string
	Toasts      []toast.Toast

	// Content is the page-specific view model.
	Content  any
	Error    string
	NotFound bool

	// Partial is set when only the content fragment is rendered.
	Partial bool
	DevMode bool
}

// pageDataParams groups what newPageData needs besides the request.
type pageDataParams struct {
	Session   *domainauth.Session
	Page      PageSpec
	AssetBase string
	DevMode   bool
}

// newPageData builds the shared layout data for a request. An anonymous request
// gets the default theme and no menu.
func newPageData(r *http.Request, p pageDataParams) *PageData {
	theme := tenant.Defaults()
	data := &PageData{
		Title:       p.Page.Label,
		CurrentPage: p.Page.ID,
		Template:    p.Page.Template,
		CSRFToken:   GetCSRFToken(r),
		DevMode:     p.DevMode,
	}

	if sess := p.Session; sess != nil {
		theme = sess.Theme()
		data.User = &UserView{
			Username: sess.Username,
			Email:    sess.Email,
			Role:     string(sess.Role),
			IsAdmin:  sess.IsAdmin(),
		}
		data.Nav = NavItems(p.Page.ID, sess.IsAdmin())
	}

	data.ThemeVars = theme.ThemeVars()
	data.Brand = Brand{Name: theme.NomeEmpresa, LogoURL: theme.LogoURL(p.AssetBase)}
	return data
}
