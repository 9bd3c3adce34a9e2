package testutil

import (
	"errors"
	"net/http"
	"testing"

	apperrors "mywallet/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	requireAppError(t, err, expectedCode)
}

// AssertInUse checks that err is the *_IN_USE error expectedCode and that it
// reports exactly count blocking ledger rows.
func AssertInUse(t *testing.T, err error, expectedCode string, count int64) {
	t.Helper()

	appErr := requireAppError(t, err, expectedCode)
	if appErr.Count != count {
		t.Errorf("expected %s to report %d linked rows, got %d", expectedCode, count, appErr.Count)
	}
	if appErr.StatusCode != http.StatusConflict {
		t.Errorf("expected %s to map to 409, got %d", expectedCode, appErr.StatusCode)
	}
}

func requireAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
