package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRetryStopsOnNonRetriableError(t *testing.T) {
	calls := 0
	badRequest := &StatusError{StatusCode: http.StatusBadRequest, URL: "http://svc/predict"}

	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return fmt.Errorf("posting: %w", badRequest)
	})
	if !errors.Is(err, badRequest) {
		t.Fatalf("expected the status error back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", calls)
	}
}

func TestRetryRetriesServerErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &StatusError{StatusCode: http.StatusServiceUnavailable, URL: "http://svc/predict"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &StatusError{StatusCode: http.StatusInternalServerError}, true},
		{"service unavailable", &StatusError{StatusCode: http.StatusServiceUnavailable}, true},
		{"too many requests", &StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"bad request", &StatusError{StatusCode: http.StatusBadRequest}, false},
		{"unauthorized", &StatusError{StatusCode: http.StatusUnauthorized}, false},
		{"not found", &StatusError{StatusCode: http.StatusNotFound}, false},
		{"wrapped status", fmt.Errorf("posting: %w", &StatusError{StatusCode: http.StatusBadGateway}), true},
		{"canceled", context.Canceled, false},
		{"plain network failure", errors.New("dial tcp: connection refused"), true},
	}
	for _, tc := range cases {
		if got := IsRetriable(tc.err); got != tc.want {
			t.Fatalf("%s: IsRetriable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
