package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcframe/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	s := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.newRunID = func() string { return "run-1" }
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	return doc
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t).Handler(), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestPipelineDefaults(t *testing.T) {
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/pipeline", `{"name":"Demo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "run-1", rec.Header().Get("X-Run-ID"))

	doc := decodeBody(t, rec)
	assert.Equal(t, "run-1", doc["run_id"])
	assert.Equal(t, "Demo", doc["project"])

	res := doc["result"].(map[string]any)
	assert.Equal(t, "safe", res["state"])
	assert.Contains(t, res, "rebar")
	assert.Contains(t, res, "cost")
}

func TestPipelineBlockedIsOK(t *testing.T) {
	body := `{"floors":{"above":30},"column":{"width":50,"depth":50,"fc":210,"bar":"#8"}}`
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/pipeline", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody(t, rec)["result"].(map[string]any)
	assert.Equal(t, "blocked", res["state"])
	assert.NotContains(t, res, "rebar")
	assert.NotContains(t, res, "cost")
}

func TestPipelineBadJSON(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/pipeline", `{"floors":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/pipeline", `{"colour":"red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/pipeline", `{"column":{"bar":"#9"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPipelineInvalidInput(t *testing.T) {
	body := `{"grid":{"span_x":20,"span_y":1},"floors":{"above":0}}`
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/pipeline", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := decodeBody(t, rec)
	assert.Len(t, doc["problems"], 3)
}

func TestOversizedSiteIsRejected(t *testing.T) {
	h := newTestServer(t).Handler()
	for _, path := range []string{"/api/pipeline", "/api/grid"} {
		rec := do(t, h, http.MethodPost, path, `{"site":{"width":1e7,"depth":20}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "cannot exceed", path)
	}
}

func TestGrid(t *testing.T) {
	body := `{"site":{"width":10,"depth":10},"span_x":6,"span_y":6}`
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/grid", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := decodeBody(t, rec)
	g := doc["grid"].(map[string]any)
	assert.Equal(t, 3.0, g["nx"])
	assert.Equal(t, 5.0, g["actual_span_x"])
	assert.Equal(t, "adequate", doc["span_class"])
	assert.Len(t, doc["columns"], 9)
}

func TestGridInvalid(t *testing.T) {
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/grid", `{"span_x":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestClimate(t *testing.T) {
	body := `{"latitude":45,"site":{"width":12,"depth":20},"floors":7}`
	rec := do(t, newTestServer(t).Handler(), http.MethodPost, "/api/climate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := decodeBody(t, rec)
	profile := doc["profile"].(map[string]any)
	assert.Equal(t, "cold", profile["zone"])
	assert.Greater(t, doc["facade"].(map[string]any)["cost"], 0.0)
}

func TestReports(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/report/pdf", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, h, http.MethodPost, "/api/report/xlsx", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	blocked := `{"floors":{"above":30},"column":{"width":50,"depth":50,"fc":210,"bar":"#8"}}`
	rec = do(t, h, http.MethodPost, "/api/report/xlsx", blocked)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t).Handler(), http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(t).Handler(), http.MethodOptions, "/api/pipeline", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	h := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, h, http.MethodPost, "/api/grid", `{}`).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// health checks are not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/health", "").Code)
}

func TestRateLimiterSweep(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	now = now.Add(5 * time.Minute)
	assert.True(t, l.Allow("10.0.0.2"))
	require.Equal(t, 2, l.Len())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, l.Sweep(visitorTTL))
	assert.Equal(t, 1, l.Len())

	now = now.Add(visitorTTL)
	assert.Equal(t, 1, l.Sweep(visitorTTL))
	assert.Zero(t, l.Len())
}

func TestRateLimiterSweepsUntilCancelled(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	l.Allow("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.SweepEvery(ctx, 5*time.Millisecond, 0)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	var logs bytes.Buffer
	s := New(config.Default(), slog.New(slog.NewTextHandler(&logs, nil)))

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, map[string]float64{"ratio": math.Inf(1)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "writing response")
	assert.Contains(t, logs.String(), "unsupported value")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
