package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel logrus.Level
	}{
		{"ok", http.StatusOK, logrus.InfoLevel},
		{"client error", http.StatusBadRequest, logrus.InfoLevel},
		{"server error", http.StatusInternalServerError, logrus.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte("body"))
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/overlay", nil))

			entry := hook.LastEntry()
			if entry == nil {
				t.Fatal("expected a log entry")
			}
			if entry.Level != tc.wantLevel {
				t.Errorf("expected level %v, got %v", tc.wantLevel, entry.Level)
			}
			if entry.Data["status"] != tc.status {
				t.Errorf("expected status field %d, got %v", tc.status, entry.Data["status"])
			}
			if entry.Data["path"] != "/api/v1/overlay" {
				t.Errorf("unexpected path field %v", entry.Data["path"])
			}
			if entry.Data["bytes"] != 4 {
				t.Errorf("expected 4 bytes, got %v", entry.Data["bytes"])
			}
		})
	}
}
