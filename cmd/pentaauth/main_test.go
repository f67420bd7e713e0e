package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PENTAAUTH_STATE_DIR", t.TempDir())
	t.Setenv("PENTAAUTH_STORAGE", "file")
	t.Setenv("PENTAAUTH_LOG_LEVEL", "error")
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return -1
}

func TestCLISessionSurvivesInvocations(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, []string{"login", "--email", "admin@pentaledger.com", "--password", "admin123"}, &out); err != nil {
		t.Fatalf("login failed: %v (%s)", err, out.String())
	}

	out.Reset()
	if err := run(ctx, []string{"whoami"}, &out); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	var view sessionJSON
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatalf("decode whoami: %v", err)
	}
	if !view.IsAuthenticated || view.Role != "admin" {
		t.Fatalf("unexpected session %+v", view)
	}

	out.Reset()
	if err := run(ctx, []string{"can", "payroll", "delete"}, &out); err != nil {
		t.Fatalf("expected admin to delete payroll: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"logout"}, &out); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"can", "payroll", "read"}, &out); exitCode(err) != 1 {
		t.Fatalf("expected exit 1 after logout, got %v", err)
	}
	if strings.TrimSpace(out.String()) != "denied" {
		t.Fatalf("expected denied, got %q", out.String())
	}
}

func TestCLIInvalidLogin(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"login", "-e", "x@x.com", "-p", "wrong"}, &out)
	if exitCode(err) != 1 {
		t.Fatalf("expected exit 1, got %v", err)
	}
	if strings.TrimSpace(out.String()) != "Invalid credentials" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCLIPagesAndAccess(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, []string{"login", "-e", "user@pentaledger.com", "-p", "user123"}, &out); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"pages"}, &out); err != nil {
		t.Fatalf("pages failed: %v", err)
	}
	if strings.Contains(out.String(), "/settings") {
		t.Fatalf("user must not list /settings:\n%s", out.String())
	}

	out.Reset()
	if err := run(ctx, []string{"access", "/settings"}, &out); exitCode(err) != 1 {
		t.Fatalf("expected /settings denied, got %v", err)
	}
}

func TestCLIUnknownCommandAndStorage(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	if err := run(context.Background(), []string{"frobnicate"}, &out); err == nil {
		t.Fatal("expected unknown command error")
	}
	if err := run(context.Background(), []string{"--storage", "tape", "whoami"}, &out); err == nil {
		t.Fatal("expected unknown storage error")
	}
	if err := run(context.Background(), nil, &out); exitCode(err) != 2 {
		t.Fatalf("expected usage exit 2, got %v", err)
	}
}

func TestServeMux(t *testing.T) {
	isolate(t)
	t.Setenv("PENTAAUTH_STORAGE", "memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	engine, release, err := cfg.buildEngine(context.Background(), zap.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer release()

	mux := newMux(engine, prometheus.NewRegistry(), zap.NewNop())
	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	if rec := do(http.MethodGet, "/pages", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/session", `{"email":"x@x.com","password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad login, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/session", `{"email":"user@pentaledger.com","password":"user123"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/invoices", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /invoices, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/settings", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for /settings, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /metrics, got %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for logout, got %d", rec.Code)
	}
	rec := do(http.MethodGet, "/session", "")
	if !strings.Contains(rec.Body.String(), `"status":"unauthenticated"`) {
		t.Fatalf("expected unauthenticated session, got %s", rec.Body.String())
	}
}
