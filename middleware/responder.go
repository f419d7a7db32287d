package middleware

import "net/http"

// defaultResponder is the fixed fallback when no [DeniedHandler] is
// registered: navigational (GET) requests are redirected when a target path
// is configured, everything else answers a bare status code.
type defaultResponder struct {
	loginPath     string
	forbiddenPath string
}

func (d *defaultResponder) RequireAuthenticated(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && d.loginPath != "" {
		http.Redirect(w, r, d.loginPath, http.StatusFound)
		return
	}
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

func (d *defaultResponder) RequireUnauthenticated(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func (d *defaultResponder) RequireRole(w http.ResponseWriter, r *http.Request, userRole, requiredRole string) {
	if r.Method == http.MethodGet && d.forbiddenPath != "" {
		http.Redirect(w, r, d.forbiddenPath, http.StatusFound)
		return
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
