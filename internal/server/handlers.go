package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/export"
)

// statementsPostRequest distinguishes an absent years field from an explicit zero.
type statementsPostRequest struct {
	Ticker string `json:"ticker"`
	Years  *int   `json:"years"`
}

// handleStatementsPost handles POST /api/statements with a {ticker, years} body.
func (s *Server) handleStatementsPost(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req statementsPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sr := models.StatementRequest{Ticker: req.Ticker, Years: s.app.StatementService.Limits().DefaultYears}
	if req.Years != nil {
		sr.Years = *req.Years
	}

	bundle, err := s.app.StatementService.GetStatements(r.Context(), sr.Ticker, sr.Years)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bundle)
}

// loadBundle resolves the years parameter and fetches the bundle, writing any error response.
func (s *Server) loadBundle(w http.ResponseWriter, r *http.Request, ticker string) (*models.StatementBundle, bool) {
	years, ok := YearsParam(w, r, s.app.StatementService.Limits().DefaultYears)
	if !ok {
		return nil, false
	}
	bundle, err := s.app.StatementService.GetStatements(r.Context(), ticker, years)
	if err != nil {
		WriteServiceError(w, err)
		return nil, false
	}
	return bundle, true
}

func (s *Server) handleStatementsGet(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	bundle, ok := s.loadBundle(w, r, ticker)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleStatementsCSV(w http.ResponseWriter, r *http.Request, ticker, kindName string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	kind, err := export.ParseStatementKind(kindName)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	bundle, ok := s.loadBundle(w, r, ticker)
	if !ok {
		return
	}

	var sb strings.Builder
	if err := export.WriteCSV(&sb, bundle, kind); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFileName(bundle, kind)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sb.String()))
}

func (s *Server) handleStatementsChart(w http.ResponseWriter, r *http.Request, ticker, kindName string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	kind, err := export.ParseChartKind(kindName)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	bundle, ok := s.loadBundle(w, r, ticker)
	if !ok {
		return
	}

	png, err := export.RenderChart(bundle, kind)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleStatementsReport(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	bundle, ok := s.loadBundle(w, r, ticker)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(export.RenderMarkdown(bundle)))
}

func (s *Server) handleStatementsValidate(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	years, ok := YearsParam(w, r, s.app.StatementService.Limits().DefaultYears)
	if !ok {
		return
	}

	report, err := s.app.StatementService.ValidateStatements(r.Context(), ticker, years)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
