package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"docnav/internal/builder"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
)

func newTestSite(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	root := t.TempDir()
	page := "<html><body><p>page</p></body></html>"
	if err := os.WriteFile(filepath.Join(root, "p1.html"), []byte(page), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}
	hub := newHub()
	ts := httptest.NewServer(newRouter(hub, root))
	t.Cleanup(ts.Close)
	return hub, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestLiveReloadInjection(t *testing.T) {
	_, ts := newTestSite(t)

	resp, body := get(t, ts.URL+"/p1.html")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "new WebSocket") || !strings.HasSuffix(strings.TrimSpace(body), "</body></html>") {
		t.Errorf("live reload script not injected before </body>: %s", body)
	}
	if resp.Header.Get("Cache-Control") == "" {
		t.Error("expected no-cache headers")
	}

	_, css := get(t, ts.URL+"/style.css")
	if css != "body{}" {
		t.Errorf("non-html response modified: %q", css)
	}

	resp, body = get(t, ts.URL+"/missing.html")
	if resp.StatusCode != http.StatusNotFound || strings.Contains(body, "WebSocket") {
		t.Errorf("404 should pass through untouched, got %d %q", resp.StatusCode, body)
	}
}

func dialReload(t *testing.T, hub *Hub, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return conn
}

func TestBroadcastReload(t *testing.T) {
	hub, ts := newTestSite(t)
	conn := dialReload(t, hub, ts)

	hub.broadcastMessage([]byte("reload"))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
}

func TestWatchPaths(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "pages", "appendix")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, "site.yaml")
	if err := os.WriteFile(cfg, []byte("title: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	public := filepath.Join(root, "pages", "public")
	if err := os.MkdirAll(filepath.Join(public, "appendix"), 0755); err != nil {
		t.Fatal(err)
	}

	paths := []string{filepath.Join(root, "pages"), cfg, filepath.Join(root, "absent")}
	if err := watchPaths(w, paths, public); err != nil {
		t.Fatalf("watchPaths failed: %v", err)
	}

	watched := make(map[string]bool)
	for _, p := range w.WatchList() {
		watched[p] = true
	}
	for _, want := range []string{filepath.Join(root, "pages"), nested, root} {
		if !watched[want] {
			t.Errorf("%s not watched; have %v", want, w.WatchList())
		}
	}
	for _, skipped := range []string{public, filepath.Join(public, "appendix")} {
		if watched[skipped] {
			t.Errorf("output directory %s should not be watched", skipped)
		}
	}
}

func TestWatchForChangesRebuildsAndReloads(t *testing.T) {
	hub, ts := newTestSite(t)
	conn := dialReload(t, hub, ts)

	dir := t.TempDir()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := watchPaths(w, []string{dir}, ""); err != nil {
		t.Fatal(err)
	}

	var builds atomic.Int32
	var fail atomic.Bool
	buildFunc := func(builder.BuildOptions) error {
		builds.Add(1)
		if fail.Load() {
			return errors.New("broken page")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		watchForChanges(ctx, w, hub, buildFunc, builder.BuildOptions{})
		close(done)
	}()

	// Two quick writes fall inside one debounce window.
	page := filepath.Join(dir, "p1.html")
	for _, body := range []string{"<p>one</p>", "<p>two</p>"} {
		if err := os.WriteFile(page, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("no reload after rebuild: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
	time.Sleep(200 * time.Millisecond)
	if n := builds.Load(); n != 1 {
		t.Errorf("builds = %d, want 1", n)
	}

	// Past the debounce window a failing rebuild must not reload clients.
	time.Sleep(600 * time.Millisecond)
	fail.Store(true)
	if err := os.WriteFile(page, []byte("<p>three</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for builds.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("change after the debounce window was not rebuilt")
		}
		time.Sleep(10 * time.Millisecond)
	}
	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	if _, msg, err := conn.ReadMessage(); err == nil {
		t.Errorf("failed build broadcast %q", msg)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("watcher goroutine did not stop after cancel")
	}
}
