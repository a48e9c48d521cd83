package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		level   string
		message string
	}{
		{"Success", http.StatusOK, "INFO", "request completed"},
		{"Client Error", http.StatusNotFound, "WARN", "client error"},
		{"Server Error", http.StatusInternalServerError, "ERROR", "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			r := chi.NewRouter()
			r.Use(chimiddleware.RequestID)
			r.Use(NewStructuredLogger(logger))
			r.Get("/persons/{person_id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/persons/p-1", nil))

			var line struct {
				Level   string `json:"level"`
				Msg     string `json:"msg"`
				Request struct {
					ID    string `json:"id"`
					Path  string `json:"path"`
					Route string `json:"route"`
				} `json:"request"`
				Response struct {
					Status int `json:"status"`
				} `json:"response"`
			}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.level, line.Level)
			assert.Equal(t, tt.message, line.Msg)
			assert.Equal(t, "/persons/p-1", line.Request.Path)
			assert.Equal(t, "/persons/{person_id}", line.Request.Route)
			assert.NotEmpty(t, line.Request.ID)
			assert.Equal(t, tt.status, line.Response.Status)
		})
	}
}
