package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/fractalterm/internal/config"
)

func waitReload(t *testing.T, w *Watcher, timeout time.Duration) (Reload, bool) {
	t.Helper()
	select {
	case r := <-w.Reloads():
		return r, true
	case <-time.After(timeout):
		return Reload{}, false
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fractalterm.toml")
	writeFile(t, path, "[display]\nfps = 30\n")

	w, err := New(path, WithDebounce(20*time.Millisecond), WithLoader(func(p string) (*config.Config, error) {
		return config.LoadWith(config.LoadOptions{Path: p})
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "[display]\nfps = 24\n")

	r, ok := waitReload(t, w, 2*time.Second)
	if !ok {
		t.Fatal("no reload after write")
	}
	if r.Err != nil {
		t.Fatalf("reload error = %v", r.Err)
	}
	if r.Config.Display.FPS != 24 {
		t.Errorf("FPS = %d, want 24", r.Config.Display.FPS)
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fractalterm.toml")

	w, err := New(path, WithDebounce(20*time.Millisecond), WithLoader(func(p string) (*config.Config, error) {
		return config.LoadWith(config.LoadOptions{Path: p})
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "[display]\nfps = 0\n")

	r, ok := waitReload(t, w, 2*time.Second)
	if !ok {
		t.Fatal("no reload after create")
	}
	if !errors.Is(r.Err, config.ErrInvalidConfig) {
		t.Errorf("reload error = %v, want ErrInvalidConfig", r.Err)
	}
	if r.Config != nil {
		t.Error("invalid reload should carry no config")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fractalterm.toml")

	var loads atomic.Int32
	w, err := New(path, WithDebounce(20*time.Millisecond), WithLoader(func(string) (*config.Config, error) {
		loads.Add(1)
		return config.Default(), nil
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	if _, ok := waitReload(t, w, 200*time.Millisecond); ok {
		t.Error("unexpected reload for unrelated file")
	}
	if loads.Load() != 0 {
		t.Errorf("loads = %d, want 0", loads.Load())
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fractalterm.toml")
	writeFile(t, path, "")

	var loads atomic.Int32
	w, err := New(path, WithDebounce(150*time.Millisecond), WithLoader(func(string) (*config.Config, error) {
		loads.Add(1)
		return config.Default(), nil
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeFile(t, path, "# edit\n")
		time.Sleep(10 * time.Millisecond)
	}

	if _, ok := waitReload(t, w, 2*time.Second); !ok {
		t.Fatal("no reload after burst")
	}
	time.Sleep(300 * time.Millisecond)
	if n := loads.Load(); n != 1 {
		t.Errorf("loads = %d, want 1", n)
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "fractalterm.toml"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
	if _, ok := <-w.Reloads(); ok {
		t.Error("Reloads() should be closed")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope", "fractalterm.toml")); err == nil {
		t.Error("New() should fail when the directory is missing")
	}
}

func TestSendReplacesUnread(t *testing.T) {
	w := &Watcher{reloads: make(chan Reload, 1)}
	w.send(Reload{Err: errors.New("first")})
	w.send(Reload{Err: errors.New("second")})

	r := <-w.Reloads()
	if r.Err == nil || r.Err.Error() != "second" {
		t.Errorf("Reload.Err = %v, want second", r.Err)
	}
}
