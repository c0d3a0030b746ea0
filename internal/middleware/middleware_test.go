package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soaringjerry/ec0301/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "ok")
})

func TestCORS(t *testing.T) {
	testCases := map[string]struct {
		origins    []string
		origin     string
		method     string
		wantOrigin string
		wantCode   int
	}{
		"Wildcard":           {origins: []string{"*"}, origin: "https://a.example", method: http.MethodPost, wantOrigin: "*", wantCode: http.StatusOK},
		"Empty list":         {origin: "https://a.example", method: http.MethodPost, wantOrigin: "*", wantCode: http.StatusOK},
		"Listed origin":      {origins: []string{"https://a.example"}, origin: "https://a.example", method: http.MethodPost, wantOrigin: "https://a.example", wantCode: http.StatusOK},
		"Unlisted origin":    {origins: []string{"https://a.example"}, origin: "https://b.example", method: http.MethodPost, wantCode: http.StatusOK},
		"Preflight":          {origins: []string{"*"}, origin: "https://a.example", method: http.MethodOptions, wantOrigin: "*", wantCode: http.StatusNoContent},
		"Preflight unlisted": {origins: []string{"https://a.example"}, origin: "https://b.example", method: http.MethodOptions, wantCode: http.StatusNoContent},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/health", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			middleware.CORS(tc.origins)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
		})
	}
}

func TestLocale(t *testing.T) {
	var got string
	h := middleware.LocaleMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.LocaleFromContext(r.Context())
	}))

	testCases := map[string]struct {
		target string
		accept string
		want   string
	}{
		"Default":         {target: "/", want: "es"},
		"Query":           {target: "/?lang=en", accept: "es", want: "en"},
		"Accept-Language": {target: "/", accept: "en-US,en;q=0.9", want: "en"},
		"Unsupported":     {target: "/?lang=fr", accept: "de", want: "es"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := middleware.RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "done")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-contract-pdf", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, seen, fields["req_id"])
	assert.Equal(t, "/api/generate-contract-pdf", fields["path"])
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
	assert.Equal(t, int64(4), fields["bytes"])
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	assert.Empty(t, middleware.RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := middleware.Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-diag-pdf", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Error interno del servidor", body["error"])
	assert.Equal(t, 1, logs.FilterMessage("handler panic").Len())
}

func TestRecoverRepanicsOnAbort(t *testing.T) {
	h := middleware.Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMaxBody(t *testing.T) {
	var readErr error
	h := middleware.MaxBody(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345")))
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, readErr, &tooLarge)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("1234")))
	assert.NoError(t, readErr)
}

func TestNoStoreAndSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.SecureHeaders(middleware.NoStore(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestHeadersDoNotShareSlices(t *testing.T) {
	h := middleware.NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Pragma", "extra")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"no-cache", "extra"}, rec.Header().Values("Pragma"))
}
