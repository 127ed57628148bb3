package httpx

import "net/http"

// AccountHandlers serves the signed-in user's own account actions.
type AccountHandlers struct {
	*UIHandlers
}

// ChangePassword changes the password of the signed-in user. The outcome is
// reported through toasts only.
// POST /app/senha.
func (h *AccountHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	err := h.Auth.ChangePassword(r.Context(), sess, r.PostFormValue("senha_atual"), r.PostFormValue("nova_senha"))
	if err != nil && h.expireOnUnauthorized(w, r, sess, err) {
		return
	}
	if !IsHTMX(r) {
		redirectWithToasts(w, r, appPathPrefix+PageSettings)
		return
	}
	h.respondNoSwap(w, r)
}
