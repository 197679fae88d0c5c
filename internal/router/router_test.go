package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/daca-chatbot/internal/config"
	"github.com/deppfellow/daca-chatbot/internal/handler"
	"github.com/deppfellow/daca-chatbot/internal/middleware"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}

	logger := zerolog.Nop()
	s := server.New(cfg, &logger, nil)
	services := service.NewServices(s)
	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// fieldsOf returns the field names listed in an error body.
func fieldsOf(t *testing.T, body map[string]any) []string {
	t.Helper()

	items, ok := body["errors"].([]any)
	require.True(t, ok, "errors missing from %v", body)

	fields := make([]string, 0, len(items))
	for _, item := range items {
		fields = append(fields, item.(map[string]any)["field"].(string))
	}
	return fields
}

func TestRoot(t *testing.T) {
	r := newTestRouter(t, nil)
	const welcome = `{"message":"Welcome to the DACA Chatbot API! Access /docs for the API documentation."}`

	for _, target := range []string{"/", "/?foo=bar"} {
		rec := do(t, r, http.MethodGet, target, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, welcome, rec.Body.String())
	}

	t.Run("headers and body ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?user_id=alice", strings.NewReader(`{"text":"ignored"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-checked")
		req.Header.Set("X-Custom-Header", "anything")
		req.Header.Set(echo.HeaderAccept, "text/plain")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, welcome, rec.Body.String())
	})
}

func TestGetUser(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "with role", target: "/users/42?role=admin", want: `{"user_id":"42","role":"admin"}`},
		{name: "without role", target: "/users/42", want: `{"user_id":"42","role":"guest"}`},
		{name: "empty role", target: "/users/42?role=", want: `{"user_id":"42","role":"guest"}`},
		{name: "non numeric id", target: "/users/alice?role=editor", want: `{"user_id":"alice","role":"editor"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, tt.target, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestChat(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, target := range []string{"/chat/", "/chat"} {
		t.Run(target, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, target,
				`{"user_id":"alice","text":"Hi","metadata":{"timestamp":"2024-01-01T00:00:00Z","session_id":"request-session"},"tags":["greeting"]}`)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)

			assert.Equal(t, "alice", body["user_id"])
			assert.Equal(t, "Hello, alice! You said: 'Hi'. How can I assist you today?", body["reply"])

			metadata := body["metadata"].(map[string]any)
			assert.NotEqual(t, "request-session", metadata["session_id"])
			assert.NoError(t, uuid.Validate(metadata["session_id"].(string)))

			ts, err := time.Parse(time.RFC3339Nano, metadata["timestamp"].(string))
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), ts, time.Minute)
		})
	}
}

func TestChatEmptyMetadataObject(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/chat/", `{"user_id":"u1","text":"ping","metadata":{}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Hello, u1! You said: 'ping'. How can I assist you today?", decodeBody(t, rec)["reply"])
}

func TestChatTimestampWithoutOffset(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/chat/", `{"user_id":"u1","text":"ping","metadata":{"timestamp":"2025-03-01T10:00:00"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Hello, u1! You said: 'ping'. How can I assist you today?", decodeBody(t, rec)["reply"])
}

func TestChatBodyTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BodyLimit = "1K"
	r := newTestRouter(t, cfg)

	body := `{"user_id":"u1","text":"` + strings.Repeat("a", 2048) + `","metadata":{}}`

	t.Run("declared length", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/chat/", body)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", decodeBody(t, rec)["code"])
	})

	t.Run("streamed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.ContentLength = -1
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", decodeBody(t, rec)["code"])
	})

	t.Run("within limit", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/chat/", `{"user_id":"u1","text":"short","metadata":{}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestChatBlankText(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, text := range []string{"", "   "} {
		rec := do(t, r, http.MethodPost, "/chat/", `{"user_id":"u1","text":"`+text+`","metadata":{}}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Message text cannot be empty", body["detail"])
		assert.Equal(t, "BAD_REQUEST", body["code"])
	}
}

func TestChatMalformedMessage(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "missing user id",
			body:       `{"text":"Hi","metadata":{}}`,
			wantFields: []string{"user_id"},
		},
		{
			name:       "missing text and metadata",
			body:       `{"user_id":"u1"}`,
			wantFields: []string{"text", "metadata"},
		},
		{
			name:       "text is a number",
			body:       `{"user_id":"u1","text":42,"metadata":{}}`,
			wantFields: []string{"text"},
		},
		{
			name:       "bad timestamp",
			body:       `{"user_id":"u1","text":"Hi","metadata":{"timestamp":"yesterday"}}`,
			wantFields: []string{"metadata.timestamp"},
		},
		{
			name:       "metadata not an object",
			body:       `{"user_id":"u1","text":"Hi","metadata":"now"}`,
			wantFields: []string{"metadata"},
		},
		{
			name:       "non string tags",
			body:       `{"user_id":"u1","text":"Hi","metadata":{},"tags":["ok",7]}`,
			wantFields: []string{"tags[1]"},
		},
		{
			name:       "invalid json",
			body:       `{"user_id":`,
			wantFields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/chat/", tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			assert.Equal(t, "UNPROCESSABLE_ENTITY", body["code"])
			assert.ElementsMatch(t, tt.wantFields, fieldsOf(t, body))
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/nope", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["detail"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDOnEveryResponse(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, rec := range []*httptest.ResponseRecorder{
		do(t, r, http.MethodGet, "/", ""),
		do(t, r, http.MethodGet, "/users/1", ""),
		do(t, r, http.MethodPost, "/chat/", `{}`),
	} {
		assert.NoError(t, uuid.Validate(rec.Header().Get(middleware.RequestIDHeader)))
	}
}

func TestStatus(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "development", body["environment"])
	assert.Contains(t, body, "uptime")
}

func TestDocs(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = do(t, r, http.MethodGet, "/static/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DACA Chatbot API", decodeBody(t, rec)["info"].(map[string]any)["title"])
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	do(t, r, http.MethodGet, "/users/7", "")
	rec := do(t, r, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chatbot_http_requests_total{method="GET",route="/users/:user_id",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Observability.Metrics.Enabled = false
	r := newTestRouter(t, cfg)

	rec := do(t, r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Rate = 0.001
	cfg.RateLimit.Burst = 2
	r := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/", "").Code)

	rec := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeBody(t, rec)["code"])

	// Status and metrics stay reachable.
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/status", "").Code)

	metrics := do(t, r, http.MethodGet, "/metrics", "")
	assert.Contains(t, metrics.Body.String(), `chatbot_rate_limit_hits_total{route="/"} 1`)
}
