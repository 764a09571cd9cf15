package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/types"
)

func testServer(t *testing.T, hotReload bool) *PreviewServer {
	t.Helper()

	cfg := &config.Config{
		Site: config.SiteConfig{
			Title:   "C++ Notes",
			BaseURL: "http://localhost:8080",
		},
		Server:      config.ServerConfig{Host: "localhost", Port: 8080},
		Development: config.DevelopmentConfig{HotReload: hotReload},
	}

	cat := catalog.NewCatalog()
	cat.Replace(catalog.Default())

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelError,
		Output: os.Stderr,
	})

	return New(cfg, cat, logger)
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t, true)

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))

	body := recorder.Body.String()
	want := len(catalog.Default().Categories)
	assert.Equal(t, want, strings.Count(body, `<a class="category-card`))
	assert.Contains(t, body, "WebSocket", "hot reload should inject the reload snippet")
}

func TestHandleIndexWithoutHotReload(t *testing.T) {
	s := testServer(t, false)

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "WebSocket")
}

func TestHandleIndexNotFound(t *testing.T) {
	s := testServer(t, true)

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandleStylesheet(t *testing.T) {
	s := testServer(t, true)

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/assets/site.css", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/css; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), ".category-grid")
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, true)

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, float64(len(catalog.Default().Categories)), payload["categories"])
}

func TestIndexReflectsCatalogChanges(t *testing.T) {
	s := testServer(t, false)

	s.catalog.Replace(types.Section{
		Heading: "Only One",
		Categories: []types.CategoryDescriptor{
			{Slug: "solo", Title: "Solo", Description: "d", Icon: "⭐", Href: "/docs/solo"},
		},
	})

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	body := recorder.Body.String()
	assert.Equal(t, 1, strings.Count(body, `<a class="category-card`))
	assert.Contains(t, body, "Solo")
}

func TestCheckOrigin(t *testing.T) {
	s := testServer(t, true)

	makeRequest := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, s.hub.checkOrigin(makeRequest("http://localhost:8080")))
	assert.True(t, s.hub.checkOrigin(makeRequest("http://127.0.0.1:8080")))
	assert.False(t, s.hub.checkOrigin(makeRequest("")))
	assert.False(t, s.hub.checkOrigin(makeRequest("http://evil.example.com")))
	assert.False(t, s.hub.checkOrigin(makeRequest("ftp://localhost:8080")))
	assert.False(t, s.hub.checkOrigin(makeRequest("://bad")))
}

func TestCheckOriginAllowsConfiguredExtras(t *testing.T) {
	s := testServer(t, true)
	s.config.Server.AllowedOrigins = []string{"preview.example.com"}

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://preview.example.com")
	assert.True(t, s.hub.checkOrigin(r))
}

func TestWebSocketRejectsBadOrigin(t *testing.T) {
	s := testServer(t, true)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/ws", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocketReceivesReloadBroadcast(t *testing.T) {
	s := testServer(t, true)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tsURL, err := url.Parse(ts.URL)
	require.NoError(t, err)
	// The test server listens on an ephemeral port, not the configured one
	s.config.Server.AllowedOrigins = []string{tsURL.Host}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{ts.URL}},
	})
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool {
		return s.hub.clientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.NotifyReload(ctx)

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var message reloadMessage
	require.NoError(t, json.Unmarshal(data, &message))
	assert.Equal(t, "full_reload", message.Type)
}

func TestForwardCatalogEventsCoalesces(t *testing.T) {
	s := testServer(t, true)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tsURL, err := url.Parse(ts.URL)
	require.NoError(t, err)
	s.config.Server.AllowedOrigins = []string{tsURL.Host}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{ts.URL}},
	})
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool {
		return s.hub.clientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	events := s.catalog.Watch()
	defer s.catalog.UnWatch(events)
	go s.forwardCatalogEvents(ctx, events)

	// A bulk replace emits one event per entry but should trigger a
	// single reload
	s.catalog.Replace(catalog.Default())

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), "full_reload")
}
