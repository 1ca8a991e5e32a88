package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"invalid operation", ErrInvalidOperation, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"invalid credential", ErrInvalidCredential, http.StatusUnauthorized},
		{"expired credential", ErrExpiredCredential, http.StatusUnauthorized},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToHTTPStatus(tc.err); got != tc.want {
				t.Errorf("ToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapErrorPreservesCodeAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := WrapError(ErrInternal, cause)

	if wrapped.Code != ErrInternal.Code {
		t.Errorf("expected code %s, got %s", ErrInternal.Code, wrapped.Code)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped error to match its cause via errors.Is")
	}
	if ToHTTPStatus(wrapped) != http.StatusInternalServerError {
		t.Errorf("expected wrapped error to keep its HTTP status")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	detailed := WithMessage(ErrInvalidCredential, "Unauthorized: refresh token mismatch")

	if !errors.Is(detailed, ErrInvalidCredential) {
		t.Error("expected WithMessage variant to match the sentinel by code")
	}
	if errors.Is(detailed, ErrExpiredCredential) {
		t.Error("expected different codes not to match")
	}
	if GetErrorMessage(detailed) != "Unauthorized: refresh token mismatch" {
		t.Errorf("unexpected message: %s", GetErrorMessage(detailed))
	}
}

func TestDomainErrorThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("refresh failed: %w", ErrExpiredCredential)

	if !IsDomainError(err) {
		t.Fatal("expected fmt-wrapped domain error to be recognized")
	}
	if got := ToHTTPStatus(err); got != http.StatusUnauthorized {
		t.Errorf("expected 401 through fmt wrapping, got %d", got)
	}
}
