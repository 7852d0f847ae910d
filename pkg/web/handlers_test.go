package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/john-holland/matic-belt/pkg/belt"
	"github.com/john-holland/matic-belt/pkg/camera"
	"github.com/john-holland/matic-belt/pkg/capture"
)

type nopStore struct{}

func (nopStore) Save(_ []byte, name string) (string, error) { return name, nil }

func newTestServer(t *testing.T) (*Server, *camera.MockSource) {
	t.Helper()
	settings := camera.DefaultSettings()
	settings.TimerInterval = 3600
	source := camera.NewMockSource()
	session, err := capture.NewSession(settings, source, nopStore{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return NewServer("0", session, belt.NewTracker()), source
}

func doJSON(t *testing.T, s *Server, method, path string, wantCode int) map[string]any {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		t.Fatalf("%s %s status = %d, want %d", method, path, resp.StatusCode, wantCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	out := doJSON(t, s, http.MethodGet, "/api/health", http.StatusOK)
	if out["status"] != "ok" {
		t.Errorf("status = %v", out["status"])
	}
}

func TestBeltOpenClose(t *testing.T) {
	s, _ := newTestServer(t)

	out := doJSON(t, s, http.MethodPost, "/api/belt/open", http.StatusOK)
	if out["action"] != "open" || out["total_opens"] != float64(1) {
		t.Errorf("open event = %v", out)
	}

	out = doJSON(t, s, http.MethodPost, "/api/belt/close", http.StatusOK)
	if out["action"] != "close" {
		t.Errorf("close event = %v", out)
	}
	if _, ok := out["error"]; ok {
		t.Errorf("unexpected error on valid close: %v", out)
	}
	// Duration is present on every successful close, even a 0.0 one.
	if _, ok := out["duration"]; !ok {
		t.Errorf("close event missing duration: %v", out)
	}

	stats := doJSON(t, s, http.MethodGet, "/api/belt/stats", http.StatusOK)
	if stats["is_open"] != false || stats["total_opens"] != float64(1) {
		t.Errorf("stats = %v", stats)
	}
}

func TestBeltCloseWithoutOpen(t *testing.T) {
	s, _ := newTestServer(t)

	out := doJSON(t, s, http.MethodPost, "/api/belt/close", http.StatusConflict)
	if out["error"] != "Belt was not open" {
		t.Errorf("close event = %v", out)
	}

	stats := doJSON(t, s, http.MethodGet, "/api/belt/stats", http.StatusOK)
	if stats["total_opens"] != float64(0) {
		t.Errorf("rejected close changed stats: %v", stats)
	}
}

func TestCameraStartFailure(t *testing.T) {
	s, source := newTestServer(t)
	source.OpenErr = camera.ErrDeviceUnavailable

	out := doJSON(t, s, http.MethodPost, "/api/camera/start", http.StatusServiceUnavailable)
	if out["status"] != "error" {
		t.Errorf("start response = %v", out)
	}

	stats := doJSON(t, s, http.MethodGet, "/api/camera/stats", http.StatusOK)
	if stats["is_capturing"] != false {
		t.Errorf("stats after failed start = %v", stats)
	}
}

func TestCameraLifecycleAndCapture(t *testing.T) {
	s, source := newTestServer(t)
	for i := 0; i < 4; i++ {
		source.PushGray(8, 6, uint8(i*10))
	}

	out := doJSON(t, s, http.MethodPost, "/api/camera/start", http.StatusOK)
	if out["status"] != "success" {
		t.Fatalf("start response = %v", out)
	}
	if _, ok := out["settings"]; !ok {
		t.Error("start response missing settings")
	}

	rec := doJSON(t, s, http.MethodPost, "/api/camera/capture", http.StatusOK)
	if rec["status"] != "success" || rec["trigger"] != "manual" {
		t.Errorf("capture record = %v", rec)
	}
	if rec["movement"] == nil {
		t.Error("capture record missing movement sample")
	}

	out = doJSON(t, s, http.MethodPost, "/api/camera/stop", http.StatusOK)
	if out["status"] != "success" {
		t.Errorf("stop response = %v", out)
	}

	stats := doJSON(t, s, http.MethodGet, "/api/camera/stats", http.StatusOK)
	if stats["is_capturing"] != false {
		t.Errorf("stats after stop = %v", stats)
	}
}

func TestCaptureBeforeStart(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/camera/capture", http.StatusServiceUnavailable)
	if rec["status"] != "error" {
		t.Errorf("capture record = %v", rec)
	}
}
