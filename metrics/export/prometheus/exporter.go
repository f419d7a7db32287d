// Package prometheus renders the gateway's counters in Prometheus text
// exposition format.
package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	winauth "github.com/sebastiansiedlarz409/win-auth-beta"
)

type metricsSource interface {
	Snapshot() winauth.MetricsSnapshot
}

type counterDef struct {
	ID   winauth.MetricID
	Name string
	Help string
}

var counterDefs = []counterDef{
	{winauth.MetricLoginSuccess, "winauth_login_success_total", "Credential checks that passed."},
	{winauth.MetricLoginFailure, "winauth_login_failure_total", "Credential checks that were rejected."},
	{winauth.MetricSessionCreated, "winauth_session_created_total", "Sessions created."},
	{winauth.MetricSessionRenewed, "winauth_session_renewed_total", "Sliding session renewals."},
	{winauth.MetricSessionDestroyed, "winauth_session_destroyed_total", "Sessions destroyed by logout."},
	{winauth.MetricDecisionProceed, "winauth_decision_proceed_total", "Requests allowed through the gateway."},
	{winauth.MetricDecisionRequireLogin, "winauth_decision_require_login_total", "Unauthenticated requests denied."},
	{winauth.MetricDecisionRequireLogout, "winauth_decision_require_logout_total", "Authenticated callers rejected from login-only routes."},
	{winauth.MetricDecisionForbidden, "winauth_decision_forbidden_total", "Requests denied for insufficient role."},
	{winauth.MetricExecutionError, "winauth_execution_error_total", "Requests aborted by collaborator failures."},
}

// Exporter renders a manager's metrics. Construct it with [NewExporter].
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter reading from the given manager's metrics.
// mgr.Metrics() may be nil (metrics disabled); the exporter then renders
// zeroes.
func NewExporter(mgr *winauth.Manager) *Exporter {
	return &Exporter{source: mgr.Metrics()}
}

// Handler returns an http.Handler serving the exposition text.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render produces the current counters in Prometheus text format.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.Snapshot()

	var b strings.Builder
	b.Grow(2048)

	for _, def := range counterDefs {
		writeCounter(&b, def.Name, def.Help, snapshot.Counters[def.ID])
	}

	return b.String()
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(help)
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" counter\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}
