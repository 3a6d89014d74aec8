package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/synthfin/internal/common"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Statements
	mux.HandleFunc("/api/statements/", s.routeStatements)
	mux.HandleFunc("/api/statements", s.handleStatementsPost)

	// Glossary
	mux.HandleFunc("/api/glossary", s.handleGlossary)
}

// routeStatements dispatches /api/statements/{ticker}/* to the appropriate handler.
func (s *Server) routeStatements(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/statements/"
	if r.URL.Path == prefix {
		s.handleStatementsPost(w, r)
		return
	}

	ticker := PathParam(r, prefix, "")
	subpath := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix+ticker), "/")

	switch {
	case subpath == "":
		s.handleStatementsGet(w, r, ticker)
	case subpath == "report":
		s.handleStatementsReport(w, r, ticker)
	case subpath == "validate":
		s.handleStatementsValidate(w, r, ticker)
	case strings.HasPrefix(subpath, "csv/"):
		s.handleStatementsCSV(w, r, ticker, strings.TrimPrefix(subpath, "csv/"))
	case strings.HasPrefix(subpath, "chart/"):
		s.handleStatementsChart(w, r, ticker, strings.TrimPrefix(subpath, "chart/"))
	default:
		WriteErrorWithCode(w, http.StatusNotFound, "Not found", CodeNotFound)
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limits := s.app.StatementService.Limits()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":        s.app.Config.Environment,
		"default_years":      limits.DefaultYears,
		"max_years":          limits.MaxYears,
		"last_fiscal_year":   limits.LastFiscalYear,
		"first_fiscal_year":  limits.FirstFiscalYear(limits.MaxYears),
		"currency":           limits.Currency,
		"cache_capacity":     s.app.Config.Cache.Capacity,
		"rate_limit_per_sec": s.app.Config.RateLimit.RequestsPerSecond,
		"logging_level":      s.app.Config.Logging.Level,
		"uptime":             time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}
