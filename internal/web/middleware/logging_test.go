package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/convertidor/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logging.SetupWriter(&buf, "info", "json")
	return &buf
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantBytes float64
		wantRunID string
	}{
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("hello"))
			},
			wantCode:  http.StatusOK,
			wantBytes: 5,
		},
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "conversion response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(ConversionIDHeader, "run-42")
				w.Write([]byte(`"A"`))
			},
			wantCode:  http.StatusOK,
			wantBytes: 3,
			wantRunID: "run-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			rec := httptest.NewRecorder()
			Logger(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/convert", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("recorder status = %d, want %d", rec.Code, tt.wantCode)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log entry %q: %v", buf.String(), err)
			}
			if got := entry["status"]; got != float64(tt.wantCode) {
				t.Errorf("status = %v, want %d", got, tt.wantCode)
			}
			if got := entry["bytes"]; got != tt.wantBytes {
				t.Errorf("bytes = %v, want %v", got, tt.wantBytes)
			}
			if got := entry["path"]; got != "/api/convert" {
				t.Errorf("path = %v", got)
			}
			runID, _ := entry["run_id"].(string)
			if runID != tt.wantRunID {
				t.Errorf("run_id = %q, want %q", runID, tt.wantRunID)
			}
		})
	}
}

func TestLogger_RealIP(t *testing.T) {
	buf := captureLogs(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Real-IP", "10.0.0.7")
	// httptest requests come from 192.0.2.1.
	h := TrustedRealIP([]string{"192.0.2.0/24"})(Logger(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["ip"] != "10.0.0.7" {
		t.Errorf("ip = %v, want 10.0.0.7", entry["ip"])
	}
}
