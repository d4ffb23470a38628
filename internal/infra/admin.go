package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"coffee-scheduler/internal/workerpool"
)

type CacheManager interface {
	GetCacheStats() map[string]int
	ClearCache()
	CleanupExpired()
}

// AdminServer exposes operational knobs: worker pool sizing and the customer
// lookup cache. It is bound to a separate address and never reaches the
// scheduler's state.
type AdminServer struct {
	srv          *http.Server
	pool         *workerpool.Pool
	cacheManager CacheManager
}

func NewAdmin(addr string, pool *workerpool.Pool, cacheManager CacheManager) *AdminServer {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	as := &AdminServer{
		srv:          server,
		pool:         pool,
		cacheManager: cacheManager,
	}

	mux.HandleFunc("/pool/resize", as.handlePoolResize)
	mux.HandleFunc("/cache/stats", as.handleCacheStats)
	mux.HandleFunc("/cache/clear", as.handleCacheClear)
	mux.HandleFunc("/cache/cleanup", as.handleCacheCleanup)

	return as
}

func (a *AdminServer) handlePoolResize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	n, _ := strconv.Atoi(r.URL.Query().Get("workers"))
	if n <= 0 {
		http.Error(w, "workers must be > 0", http.StatusBadRequest)
		return
	}
	a.pool.Resize(n)
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	if a.cacheManager == nil {
		http.Error(w, "cache disabled", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.cacheManager.GetCacheStats()); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	if a.cacheManager == nil {
		http.Error(w, "cache disabled", http.StatusNotFound)
		return
	}
	a.cacheManager.ClearCache()
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) handleCacheCleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	if a.cacheManager == nil {
		http.Error(w, "cache disabled", http.StatusNotFound)
		return
	}
	a.cacheManager.CleanupExpired()
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) Start() {
	go func() {
		slog.Info("admin server listening", "addr", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("admin server failed", "error", err)
		}
	}()
}

func (a *AdminServer) Stop(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("admin server shutdown failed", "error", err)
	}
}
