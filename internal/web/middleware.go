package web

import "net/http"

// RequireAuth gates protected routes on the session store. While init is
// still resolving the persisted token it renders a holding page instead of
// redirecting, so a reload never flashes the login screen before the token
// has been validated.
func (h *handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Session.Loading() {
			h.render(w, http.StatusOK, "loading.html", page{Title: "Загрузка"})
			return
		}
		if !h.Session.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
