package errors

import (
	"errors"
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

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Tour not found",
			},
			expected: "NOT_FOUND: Tour not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"not found", NotFound("Booking not found"), CodeNotFound, http.StatusNotFound},
		{"forbidden", Forbidden("Cannot modify bookings for other operators"), CodeForbidden, http.StatusForbidden},
		{"bad request", BadRequest("Status must be provided"), CodeBadRequest, http.StatusBadRequest},
		{"unauthorized", Unauthorized("Invalid credentials"), CodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("Email already registered"), CodeConflict, http.StatusConflict},
		{"invalid input", InvalidInput("Invalid tour ID format"), CodeInvalidInput, http.StatusBadRequest},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.httpStatus {
				t.Errorf("expected status %d, got %d", tt.httpStatus, tt.err.HTTPStatus)
			}
		})
	}
}

func TestValidation_CarriesDetails(t *testing.T) {
	err := Validation("Invalid booking input", map[string]any{"field": "number_of_people"})

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Details["field"] != "number_of_people" {
		t.Errorf("expected details to carry the failing field, got %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Tour not found")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("expected the same AppError back, got %v", got)
	}

	plain := errors.New("mongo: socket closed")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected unknown errors wrapped as %s, got %s", CodeInternal, got.Code)
	}
	if got.Message != "Internal server error" {
		t.Errorf("expected opaque message, got %q", got.Message)
	}
	if !errors.Is(got, plain) {
		t.Error("expected wrapped error to unwrap to the original")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Forbidden("nope")) {
		t.Error("expected true for an AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for a plain error")
	}
}
