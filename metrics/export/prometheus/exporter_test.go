package prometheus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	winauth "github.com/sebastiansiedlarz409/win-auth-beta"
)

func newMetricsManager(t *testing.T) *winauth.Manager {
	t.Helper()

	cfg := winauth.DefaultConfig()
	cfg.Session.Lifetime = 10 * time.Minute
	cfg.Cookie.Secure = false

	mgr, err := winauth.New().
		WithConfig(cfg).
		WithCredentialValidator(winauth.CredentialValidatorFunc(
			func(context.Context, string, string, string) (bool, error) {
				return true, nil
			})).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("build manager: %v", err)
	}
	return mgr
}

func TestRender(t *testing.T) {
	mgr := newMetricsManager(t)

	if _, err := mgr.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := mgr.CreateSession(context.Background(), httptest.NewRecorder(), "alice"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	out := NewExporter(mgr).Render()

	for _, want := range []string{
		"# TYPE winauth_login_success_total counter",
		"winauth_login_success_total 1",
		"winauth_session_created_total 1",
		"winauth_decision_proceed_total 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q:\n%s", want, out)
		}
	}
}

func TestHandler(t *testing.T) {
	mgr := newMetricsManager(t)

	rec := httptest.NewRecorder()
	NewExporter(mgr).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "winauth_session_created_total") {
		t.Fatal("exposition body missing counters")
	}
}
