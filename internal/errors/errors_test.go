package errors

import (
	"fmt"
	"testing"
)

func TestAPIErrorWrapsSentinels(t *testing.T) {
	notFound := NewAPIError("GET", "/trades/9/", 404, "Not found.", nil)
	if !Is(notFound, ErrNotFound) {
		t.Errorf("404 should wrap ErrNotFound: %v", notFound)
	}
	if notFound.Retryable() {
		t.Error("404 should not be retryable")
	}

	failed := NewAPIError("POST", "/trades/", 502, "Bad Gateway", nil)
	if !Is(failed, ErrRequestFailed) {
		t.Errorf("502 should wrap ErrRequestFailed: %v", failed)
	}
	if !failed.Retryable() {
		t.Error("5xx should be retryable")
	}

	wrapped := Wrap(failed, "creating trade")
	var apiErr *APIError
	if !As(wrapped, &apiErr) || apiErr.StatusCode != 502 {
		t.Errorf("As should find the APIError through Wrap, got %v", wrapped)
	}
}

func TestValidationErrorUnwrapsToInputValidation(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("capital", "-5", "must be positive"))
	if !Is(err, ErrInputValidation) {
		t.Errorf("expected ErrInputValidation in chain: %v", err)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Error("wrapping nil must return nil")
	}
}
