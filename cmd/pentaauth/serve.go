package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/infinitysurge/pentaauth"
	"github.com/infinitysurge/pentaauth/middleware"
	promexport "github.com/infinitysurge/pentaauth/metrics/export/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func runServe(ctx context.Context, engine *pentaauth.Engine, cfg *Config, logger *zap.Logger, args []string) error {
	addr := cfg.ListenAddr
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.StringVar(&addr, "addr", addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		promexport.NewCollector(engine),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(engine, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func newMux(engine *pentaauth.Engine, reg *prometheus.Registry, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /session", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, sessionView(engine), logger)
	})

	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		res := engine.Login(r.Context(), req.Email, req.Password)
		status := http.StatusOK
		switch {
		case res.Success:
		case errors.Is(res.Err, pentaauth.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(res.Err, pentaauth.ErrLoginInProgress), errors.Is(res.Err, pentaauth.ErrLoginCanceled):
			status = http.StatusConflict
		case errors.Is(res.Err, pentaauth.ErrLoginRateLimited):
			status = http.StatusTooManyRequests
		default:
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, loginResponse{Success: res.Success, Error: res.Error}, logger)
	})

	mux.HandleFunc("DELETE /session", func(w http.ResponseWriter, r *http.Request) {
		engine.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Handle("GET /pages", middleware.Guard(engine)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, engine.AccessiblePages(), logger)
	})))

	mux.Handle("GET /metrics", middleware.RequirePermission(engine, "reports", "read")(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	))

	// Every other path is a navigation page.
	mux.Handle("GET /", middleware.RequirePage(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range engine.AccessiblePages() {
			if p.Path == r.URL.Path {
				respondJSON(w, http.StatusOK, p, logger)
				return
			}
		}
		http.NotFound(w, r)
	})))

	return mux
}

func respondJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response", zap.Error(err))
	}
}
