package middleware

import (
	"context"
	"net/http"

	winauth "github.com/sebastiansiedlarz409/win-auth-beta"
)

// Outcome is the middleware's terminal decision for a request.
type Outcome uint8

const (
	// OutcomeProceed lets the request reach its handler.
	OutcomeProceed Outcome = iota
	// OutcomeRequireLogin denies an unauthenticated caller on a route that
	// requires authentication.
	OutcomeRequireLogin
	// OutcomeRequireLogout denies an authenticated caller on a login-only
	// route.
	OutcomeRequireLogout
	// OutcomeForbidden denies an authenticated caller whose role does not
	// qualify.
	OutcomeForbidden
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProceed:
		return "proceed"
	case OutcomeRequireLogin:
		return "require-login"
	case OutcomeRequireLogout:
		return "require-logout"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// RouteResolver maps a request to the route identity used for policy lookup.
// The second return is false for requests that resolve to no route at all.
type RouteResolver func(r *http.Request) (string, bool)

// DefaultRouteResolver identifies routes as "METHOD /path".
func DefaultRouteResolver(r *http.Request) (string, bool) {
	return r.Method + " " + r.URL.Path, true
}

// DeniedHandler translates the three deny outcomes into transport responses.
type DeniedHandler interface {
	// RequireAuthenticated handles OutcomeRequireLogin.
	RequireAuthenticated(w http.ResponseWriter, r *http.Request)
	// RequireUnauthenticated handles OutcomeRequireLogout.
	RequireUnauthenticated(w http.ResponseWriter, r *http.Request)
	// RequireRole handles OutcomeForbidden. userRole may be empty when no
	// role provider is configured.
	RequireRole(w http.ResponseWriter, r *http.Request, userRole, requiredRole string)
}

type guard struct {
	manager  *winauth.Manager
	policies *winauth.PolicyMap
	resolve  RouteResolver
	denied   DeniedHandler
}

// Option adjusts Guard behavior.
type Option func(*guard)

// WithDeniedHandler replaces the default responder.
func WithDeniedHandler(h DeniedHandler) Option {
	return func(g *guard) { g.denied = h }
}

// WithRouteResolver replaces the default "METHOD /path" route identity.
func WithRouteResolver(resolve RouteResolver) Option {
	return func(g *guard) { g.resolve = resolve }
}

// WithLoginPath makes the default responder redirect navigational
// unauthenticated requests to path instead of answering 401.
func WithLoginPath(path string) Option {
	return func(g *guard) {
		if d, ok := g.denied.(*defaultResponder); ok {
			d.loginPath = path
		}
	}
}

// WithForbiddenPath makes the default responder redirect navigational
// role-denied requests to path instead of answering 403.
func WithForbiddenPath(path string) Option {
	return func(g *guard) {
		if d, ok := g.denied.(*defaultResponder); ok {
			d.forbiddenPath = path
		}
	}
}

// Guard returns middleware enforcing the declared access policies through
// the manager. The policy map is frozen on first use.
func Guard(manager *winauth.Manager, policies *winauth.PolicyMap, opts ...Option) func(http.Handler) http.Handler {
	g := &guard{
		manager:  manager,
		policies: policies,
		resolve:  DefaultRouteResolver,
		denied:   &defaultResponder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	policies.Freeze()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.serveHTTP(w, r, next)
		})
	}
}

func (g *guard) serveHTTP(w http.ResponseWriter, r *http.Request, next http.Handler) {
	routeID, ok := g.resolve(r)
	if !ok {
		next.ServeHTTP(w, r)
		return
	}

	policy, ok := g.policies.Lookup(routeID)
	if !ok {
		// No declared restriction: public, regardless of session state.
		next.ServeHTTP(w, r)
		return
	}

	outcome, err := Decide(r.Context(), w, r, policy, g.manager)
	if err != nil {
		g.fail(w)
		return
	}

	switch outcome {
	case OutcomeProceed:
		g.manager.Metrics().Inc(winauth.MetricDecisionProceed)
		next.ServeHTTP(w, r)

	case OutcomeRequireLogin:
		g.manager.Metrics().Inc(winauth.MetricDecisionRequireLogin)
		g.denied.RequireAuthenticated(w, r)

	case OutcomeRequireLogout:
		g.manager.Metrics().Inc(winauth.MetricDecisionRequireLogout)
		g.denied.RequireUnauthenticated(w, r)

	case OutcomeForbidden:
		userRole, err := g.manager.UserRole(r.Context(), r)
		if err != nil {
			g.fail(w)
			return
		}
		g.manager.Metrics().Inc(winauth.MetricDecisionForbidden)
		g.denied.RequireRole(w, r, userRole, policy.Role)
	}
}

// fail answers a collaborator failure. Deliberately generic: execution
// errors never leak internals and are never presented as access denial.
func (g *guard) fail(w http.ResponseWriter) {
	g.manager.Metrics().Inc(winauth.MetricExecutionError)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Decide runs the access decision for an already resolved policy. Liveness
// is checked strictly before the role, so a role-provider failure can never
// mask an unauthenticated request as a role failure. The response writer is
// needed because a liveness check near expiry reissues the session cookie.
//
// On error the outcome is meaningless; the error is an execution failure,
// never one of the deny outcomes.
func Decide(ctx context.Context, w http.ResponseWriter, r *http.Request, policy winauth.AccessPolicy, manager *winauth.Manager) (Outcome, error) {
	alive, err := manager.IsSessionAlive(ctx, w, r)
	if err != nil {
		return 0, err
	}

	if !policy.Auth {
		if !alive {
			return OutcomeProceed, nil
		}
		return OutcomeRequireLogout, nil
	}

	if !alive {
		return OutcomeRequireLogin, nil
	}
	if policy.Role == "" {
		return OutcomeProceed, nil
	}

	ok, err := manager.HasAccess(ctx, r, policy.Role)
	if err != nil {
		return 0, err
	}
	if ok {
		return OutcomeProceed, nil
	}
	return OutcomeForbidden, nil
}
