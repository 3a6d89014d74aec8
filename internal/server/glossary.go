package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/glossary"
)

// handleGlossary returns the glossary of statement terms.
// With ?ticker= each term carries the latest-year value of that ticker's bundle.
func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	var bundle *models.StatementBundle
	if ticker := strings.TrimSpace(r.URL.Query().Get("ticker")); ticker != "" {
		b, ok := s.loadBundle(w, r, ticker)
		if !ok {
			return
		}
		bundle = b
	}

	WriteJSON(w, http.StatusOK, glossary.Build(bundle))
}
