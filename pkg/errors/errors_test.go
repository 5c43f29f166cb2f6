package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Desk booking"),
			expected: "NOT_FOUND: Desk booking not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("internal error", errors.New("connection refused")),
			expected: "INTERNAL_ERROR: internal error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("request")

	if err.Code != CodeInvalidArgument {
		t.Errorf("expected code %s, got %s", CodeInvalidArgument, err.Code)
	}
	if err.ParamName() != "request" {
		t.Errorf("expected param name 'request', got %q", err.ParamName())
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("expected errors.Is(err, ErrInvalidArgument)")
	}
	if err.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.StatusCode())
	}
}

func TestParamName_EmptyForOtherErrors(t *testing.T) {
	if got := InvalidInput("bad date").ParamName(); got != "" {
		t.Errorf("expected empty param name, got %q", got)
	}
}

func TestAsAppError(t *testing.T) {
	conflict := Conflict("desk already booked", nil)
	wrapped := fmt.Errorf("saving: %w", conflict)

	if got := AsAppError(wrapped); got != conflict {
		t.Errorf("expected wrapped AppError to be unwrapped, got %v", got)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to see through wrapping")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal || !errors.Is(got, plain) {
		t.Errorf("expected plain error to become INTERNAL_ERROR wrapping it, got %v", got)
	}
}

func TestStatusCode_DefaultsToInternal(t *testing.T) {
	err := &AppError{Code: "CUSTOM"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.StatusCode())
	}
}

func TestToJSON(t *testing.T) {
	got := string(InvalidArgument("request").ToJSON())
	want := `{"code":"INVALID_ARGUMENT","message":"request cannot be nil","details":{"param":"request"}}`
	if got != want {
		t.Errorf("ToJSON() = %s, want %s", got, want)
	}
}
