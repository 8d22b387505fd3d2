package util

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
)

func TestConstructorCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{NewConflict("clash", nil), "CONFLICT", http.StatusConflict},
		{NewDuplicateEmail("ana@example.com"), "DUPLICATE_EMAIL", http.StatusConflict},
		{NewInvalidRole("admin"), "INVALID_ROLE", http.StatusBadRequest},
		{NewConstraintViolation("bad email", nil), "CONSTRAINT_VIOLATION", http.StatusBadRequest},
		{NewNotAssignee("not yours"), "NOT_ASSIGNEE", http.StatusForbidden},
		{NewInvalidActor("not a supervisor"), "INVALID_ACTOR", http.StatusBadRequest},
		{NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		var domainErr *DomainError
		if !errors.As(tc.err, &domainErr) {
			t.Errorf("%T is not a DomainError", tc.err)
			continue
		}
		if domainErr.Code != tc.code {
			t.Errorf("code = %s, want %s", domainErr.Code, tc.code)
		}
		if domainErr.HTTPStatus != tc.status {
			t.Errorf("%s status = %d, want %d", tc.code, domainErr.HTTPStatus, tc.status)
		}
		if CodeOf(tc.err) != tc.code {
			t.Errorf("CodeOf = %s, want %s", CodeOf(tc.err), tc.code)
		}
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if code := CodeOf(errors.New("plain")); code != "" {
		t.Errorf("CodeOf(plain error) = %q, want empty", code)
	}
	if code := CodeOf(nil); code != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", code)
	}
}

func TestErrorMessageWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if got := err.Error(); got != "internal server error: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestToDomainError(t *testing.T) {
	original := NewForbidden("nope")
	if got := ToDomainError(original); got.Code != "FORBIDDEN" {
		t.Errorf("existing DomainError remapped to %s", got.Code)
	}

	if got := ToDomainError(sql.ErrNoRows); got.Code != "NOT_FOUND" {
		t.Errorf("sql.ErrNoRows mapped to %s, want NOT_FOUND", got.Code)
	}

	if got := ToDomainError(errors.New("boom")); got.Code != "INTERNAL_ERROR" {
		t.Errorf("plain error mapped to %s, want INTERNAL_ERROR", got.Code)
	}

	if got := ToDomainError(nil); got != nil {
		t.Errorf("ToDomainError(nil) = %v, want nil", got)
	}
}
