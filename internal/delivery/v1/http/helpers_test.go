package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/catalogcraft/catalog-api/pkg/e"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{"integer", "600", 60000, nil},
		{"two decimals", "599.99", 59999, nil},
		{"one decimal", "0.1", 10, nil},
		{"zero", "0", 0, nil},
		{"with spaces", " 12.50 ", 1250, nil},
		{"empty", "", 0, e.ErrPriceInvalid},
		{"not a number", "abc", 0, e.ErrPriceInvalid},
		{"negative", "-5", 0, e.ErrPriceNegative},
		{"three decimals", "12.999", 0, e.ErrPricePrecision},
		{"over limit", "1000000001", 0, e.ErrPriceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parsePriceToCents(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePriceToCents(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parsePriceToCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{59999, "599.99"},
		{60000, "600.00"},
		{0, "0.00"},
		{5, "0.05"},
		{459900, "4599.00"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.cents); got != tt.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", e.Wrap("op", e.ErrProductNameRequired), http.StatusBadRequest, e.ErrProductNameRequired.Error()},
		{"bad json", e.ErrBadJSON, http.StatusBadRequest, e.ErrBadJSON.Error()},
		{"price precision", e.Wrap("op", e.ErrPricePrecision), http.StatusBadRequest, e.ErrPricePrecision.Error()},
		{"product not found", e.Wrap("ProductQueryUseCase.GetProduct", e.ErrProductNotFound), http.StatusNotFound, e.ErrProductNotFound.Error()},
		{"category not found", e.ErrCategoryNotFound, http.StatusNotFound, e.ErrCategoryNotFound.Error()},
		{"bad transition", e.Wrap("op", e.ErrInvalidStatusTransition), http.StatusConflict, e.ErrInvalidStatusTransition.Error()},
		{"archived", e.ErrProductArchived, http.StatusConflict, e.ErrProductArchived.Error()},
		{"file too large", e.Wrap("cat.png", e.ErrFileTooLarge), http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()},
		{"unsupported media", e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

// Внутренние детали ошибок не должны утекать клиенту.
func TestToHTTPResponse_HidesInternals(t *testing.T) {
	_, msg := ToHTTPResponse(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))
	if msg != e.ErrInternalServerError.Error() {
		t.Errorf("msg = %q, want generic message", msg)
	}
}
