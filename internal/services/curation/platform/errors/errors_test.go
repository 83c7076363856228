package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{err: E(KindUnauthorized, "no"), want: http.StatusUnauthorized},
		{err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{err: E(KindConflict, "pending"), want: http.StatusConflict},
		{err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{err: E(KindUnknown, "?"), want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
		{err: fmt.Errorf("wrapped: %w", E(KindConflict, "pending")), want: http.StatusConflict},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindConflict}).Error(); got != string(KindConflict) {
		t.Fatalf("Error() = %q, want %q", got, KindConflict)
	}
}

func TestWrapKeepsCauseAndKey(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := Wrap(KindUnavailable, "core.error.unavailable", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if got := LocalizationKey(err); got != "core.error.unavailable" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := err.Error(); got != cause.Error() {
		t.Fatalf("Error() = %q, want %q", got, cause.Error())
	}
	if Wrap(KindUnavailable, "k", nil) != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
}
