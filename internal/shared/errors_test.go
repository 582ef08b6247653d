package shared

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func assertHTTPError(t *testing.T, err *echo.HTTPError, status int, code, message string) {
	t.Helper()
	if err.Code != status {
		t.Errorf("expected status %d, got %d", status, err.Code)
	}
	apiErr, ok := err.Message.(*APIError)
	if !ok {
		t.Fatalf("expected message to be *APIError, got %T", err.Message)
	}
	if apiErr.Code != code {
		t.Errorf("expected code '%s', got '%s'", code, apiErr.Code)
	}
	if apiErr.Message != message {
		t.Errorf("expected message '%s', got '%s'", message, apiErr.Message)
	}
}

func TestNewAPIError(t *testing.T) {
	err := NewAPIError("test_code", "test message")
	if err.Code != "test_code" {
		t.Errorf("expected code 'test_code', got '%s'", err.Code)
	}
	if err.Message != "test message" {
		t.Errorf("expected message 'test message', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("expected nil details, got %v", err.Details)
	}
}

func TestAPIError_WithDetails(t *testing.T) {
	err := NewAPIError("code", "message")
	details := map[string]string{"field": "value"}
	err = err.WithDetails(details)

	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
	d, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatal("expected details to be map[string]string")
	}
	if d["field"] != "value" {
		t.Errorf("expected field 'value', got '%s'", d["field"])
	}
}

func TestAPIError_ToHTTP(t *testing.T) {
	apiErr := NewAPIError("code", "message")
	httpErr := apiErr.ToHTTP(http.StatusBadRequest)

	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, httpErr.Code)
	}
}

func TestHTTPErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(code, message string) *echo.HTTPError
		status  int
		code    string
		message string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "bad", "bad request"},
		{"not found", NotFound, http.StatusNotFound, "missing", "not found"},
		{"conflict", Conflict, http.StatusConflict, "dupe", "already exists"},
		{"internal", InternalError, http.StatusInternalServerError, "boom", "something broke"},
		{"bad gateway", BadGateway, http.StatusBadGateway, "labeler_failed", "vision labeler unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertHTTPError(t, tt.fn(tt.code, tt.message), tt.status, tt.code, tt.message)
		})
	}
}
