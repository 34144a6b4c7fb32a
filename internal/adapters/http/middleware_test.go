package httpadapter

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func captureAccessLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestAccessLogSkipsProbeEndpoints(t *testing.T) {
	buf := captureAccessLog(t)

	handler := accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
	}

	if buf.Len() != 0 {
		t.Fatalf("expected no access log for probes, got %q", buf.String())
	}
}

func TestAccessLogEmitsRequestLine(t *testing.T) {
	buf := captureAccessLog(t)

	handler := accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/files/abc", nil)
	req.Header.Set("User-Agent", "smoke-client/1.0")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	line := buf.String()
	if !strings.Contains(line, "http_request") {
		t.Fatalf("expected http_request event, got %q", line)
	}
	if !strings.Contains(line, `"user_agent":"smoke-client/1.0"`) {
		t.Fatalf("expected user agent attribute, got %q", line)
	}
	if !strings.Contains(line, `"status":404`) {
		t.Fatalf("expected status attribute, got %q", line)
	}
}
