package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/synthfin/internal/services/export"
	"github.com/bobmcallan/synthfin/internal/services/generator"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path, prefix, suffix, want string
	}{
		{"/api/statements/ACME/report", "/api/statements/", "/report", "ACME"},
		{"/api/statements/ACME/csv/income", "/api/statements/", "", "ACME"},
		{"/api/statements/ACME", "/api/statements/", "", "ACME"},
		{"/api/other/ACME", "/api/statements/", "", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := PathParam(r, tt.prefix, tt.suffix); got != tt.want {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.want)
		}
	}
}

func TestYearsParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/statements/ACME", nil)
	rr := httptest.NewRecorder()
	if n, ok := YearsParam(rr, r, 10); !ok || n != 10 {
		t.Errorf("absent years = (%d, %v), want (10, true)", n, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/statements/ACME?years=0", nil)
	if n, ok := YearsParam(rr, r, 10); !ok || n != 0 {
		t.Errorf("explicit zero = (%d, %v), want (0, true) for the service to reject", n, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/statements/ACME?years=x", nil)
	rr = httptest.NewRecorder()
	if _, ok := YearsParam(rr, r, 10); ok {
		t.Error("expected malformed years to fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestWriteServiceError(t *testing.T) {
	_, inputErr := generator.NormalizeTicker("")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid input", inputErr, http.StatusBadRequest, CodeInvalidInput},
		{"wrapped invalid input", fmt.Errorf("load: %w", inputErr), http.StatusBadRequest, CodeInvalidInput},
		{"insufficient data", fmt.Errorf("%w: need 2", export.ErrInsufficientData), http.StatusUnprocessableEntity, CodeInsufficientData},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, tt.err)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantBody {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantBody)
			}
		})
	}
}
