package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/infinitysurge/pentaauth"
)

func newEngine(t *testing.T) *pentaauth.Engine {
	t.Helper()
	engine, err := pentaauth.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func login(t *testing.T, engine *pentaauth.Engine, email, password string) {
	t.Helper()
	if res := engine.Login(context.Background(), email, password); !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "no principal", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(p.Email))
})

func TestGuardRequiresPrincipal(t *testing.T) {
	engine := newEngine(t)
	h := Guard(engine)(okHandler)

	if rec := serve(h, "/"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	login(t, engine, "user@pentaledger.com", "user123")
	rec := serve(h, "/")
	if rec.Code != http.StatusOK || rec.Body.String() != "user@pentaledger.com" {
		t.Fatalf("expected 200 with principal, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGuardNilEngine(t *testing.T) {
	if rec := serve(Guard(nil)(okHandler), "/"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	engine := newEngine(t)
	h := RequirePermission(engine, "payroll", "delete")(okHandler)

	if rec := serve(h, "/payroll"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	login(t, engine, "user@pentaledger.com", "user123")
	if rec := serve(h, "/payroll"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user, got %d", rec.Code)
	}

	engine.Logout(context.Background())
	login(t, engine, "admin@pentaledger.com", "admin123")
	if rec := serve(h, "/payroll"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestRequirePermissionUsesAttachedPrincipal(t *testing.T) {
	engine := newEngine(t)
	login(t, engine, "admin@pentaledger.com", "admin123")

	logout := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			engine.Logout(r.Context())
			next.ServeHTTP(w, r)
		})
	}
	h := Guard(engine)(logout(RequirePermission(engine, "payroll", "delete")(okHandler)))

	rec := serve(h, "/payroll")
	if rec.Code != http.StatusOK || rec.Body.String() != "admin@pentaledger.com" {
		t.Fatalf("expected decision on the attached admin, got %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(h, "/payroll"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 once logged out, got %d", rec.Code)
	}
}

func TestRequirePage(t *testing.T) {
	engine := newEngine(t)
	h := RequirePage(engine)(okHandler)

	login(t, engine, "user@pentaledger.com", "user123")
	if rec := serve(h, "/invoices"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(h, "/settings"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for /settings, got %d", rec.Code)
	}
	if rec := serve(h, "/nonexistent-path"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown page, got %d", rec.Code)
	}
}
