package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/glimmer/internal/capture"
	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/hook"
	"github.com/ayusman/glimmer/internal/store"
	"github.com/ayusman/glimmer/internal/visual"
)

type fakeState struct {
	state  gesture.State
	params visual.Params
}

func (f fakeState) Latest() gesture.State { return f.state }
func (f fakeState) Params() visual.Params { return f.params }

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var response map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}
		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(method, "/api/health", nil))

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_UnconfiguredRoutes(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{"/", "/api/state", "/api/hand", "/api/stream", "/api/settings", "/api/hooks", "/api/nonexistent"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusNotFound, rec.Code)
		}
	}
}

func TestServer_State(t *testing.T) {
	src := fakeState{
		state:  gesture.State{Active: true, IsPinching: true, PinchDistance: 0.03, RotationSpeed: 0.08},
		params: visual.Params{Size: 0.7, Speed: 0.04, Glow: 2},
	}
	s := New(Config{State: src})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if resp.Gesture != src.state {
		t.Errorf("gesture = %+v, want %+v", resp.Gesture, src.state)
	}
	if resp.Params != src.params {
		t.Errorf("params = %+v, want %+v", resp.Params, src.params)
	}
	if resp.Mode != gesture.ModeSilent {
		t.Errorf("mode = %q, want %q", resp.Mode, gesture.ModeSilent)
	}
	if resp.Description != "Creating Magic" {
		t.Errorf("description = %q, want %q", resp.Description, "Creating Magic")
	}
}

func TestServer_SettingsRoutes(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	s := New(Config{Store: st})
	for _, path := range []string{"/api/settings", "/api/sessions"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestServer_HooksRoute(t *testing.T) {
	s := New(Config{Hooks: hook.NewManager(t.TempDir())})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hooks", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServer_Stream(t *testing.T) {
	preview := capture.NewPreview(false)
	frame := []byte{0xFF, 0xD8, 0xFF, 0xD9}
	preview.Store(frame)

	ts := httptest.NewServer(New(Config{Preview: preview}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET /api/stream error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
		t.Fatalf("Content-Type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	header := make([]string, 0, 3)
	for len(header) < 3 {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read part header: %v", err)
		}
		header = append(header, strings.TrimSpace(line))
	}
	if header[0] != "--frame" || header[1] != "Content-Type: image/jpeg" || header[2] != "Content-Length: 4" {
		t.Errorf("part header = %q", header)
	}

	r.ReadString('\n')
	body := make([]byte, len(frame))
	if _, err := io.ReadFull(r, body); err != nil {
		t.Fatalf("read part body: %v", err)
	}
	if string(body) != string(frame) {
		t.Errorf("part body = %x, want %x", body, frame)
	}
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	content := "<html><body>tree</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	s := New(Config{StaticDir: dir})

	t.Run("serves index.html at root path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != content {
			t.Errorf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for missing files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent.html", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}
