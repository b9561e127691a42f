package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rusafidt/Sentiment-Analyzer/internal/config"
	"github.com/rusafidt/Sentiment-Analyzer/internal/corpus/corpustest"
	"github.com/rusafidt/Sentiment-Analyzer/internal/handler"
	"github.com/rusafidt/Sentiment-Analyzer/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const indexHTML = "<html><body>sentiment</body></html>"

func newTestServer(t *testing.T, buildDir string) *Server {
	t.Helper()
	trainer := service.NewTrainer(service.FSLoader(corpustest.FS(), corpustest.Root), service.DefaultTrainerConfig(), zap.NewNop())
	a, err := service.NewAnalyzer(trainer, 0, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Train(context.Background()); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Frontend.BuildDir = buildDir
	return NewServer(cfg, handler.NewHandler(a, nil, zap.NewNop()), zap.NewNop())
}

func writeBuild(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":                 indexHTML,
		"robots.txt":                 "User-agent: *",
		"_next/static/chunks/app.js": "console.log('app')",
		"assets/logo.svg":            "<svg/>",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func get(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestWithoutFrontend(t *testing.T) {
	h := newTestServer(t, filepath.Join(t.TempDir(), "missing")).Handler()

	w := get(h, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /: status = %d", w.Code)
	}
	var root map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root["status"] != "healthy" || !strings.Contains(root["message"], "Frontend not built yet") {
		t.Errorf("GET / body = %v", root)
	}

	w = get(h, http.MethodGet, "/some/client/route")
	if w.Code != http.StatusOK {
		t.Fatalf("catch-all: status = %d", w.Code)
	}
	var msg map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatal(err)
	}
	if msg["message"] != "Frontend not built. Please build the frontend first." {
		t.Errorf("catch-all body = %v", msg)
	}

	if w := get(h, http.MethodGet, "/robots.txt"); !strings.Contains(w.Body.String(), "Frontend not built") {
		t.Errorf("robots.txt without build served %q", w.Body.String())
	}
}

func TestWithFrontend(t *testing.T) {
	h := newTestServer(t, writeBuild(t)).Handler()

	tests := []struct {
		path string
		want string
	}{
		{"/", indexHTML},
		{"/dashboard", indexHTML},
		{"/robots.txt", "User-agent: *"},
		{"/_next/static/chunks/app.js", "console.log('app')"},
		{"/assets/logo.svg", "<svg/>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(h, http.MethodGet, tt.path)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if w.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestCatchAllOnlyForGet(t *testing.T) {
	h := newTestServer(t, writeBuild(t)).Handler()

	if w := get(h, http.MethodDelete, "/anything"); w.Code != http.StatusNotFound {
		t.Errorf("DELETE /anything: status = %d, want 404", w.Code)
	}
}

func TestAPIRoutesTakePrecedence(t *testing.T) {
	h := newTestServer(t, writeBuild(t)).Handler()

	w := get(h, http.MethodGet, "/api/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("GET /api/health = %d %s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, "").Handler()

	get(h, http.MethodGet, "/healthz")
	w := get(h, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, name := range []string{"http_requests_total", "sentiment_model_ready"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	h := newTestServer(t, "").Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
