package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/graphview/internal/config"
	"github.com/dshills/graphview/internal/graph"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, opts Options) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	opts.Screen = screen
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, screen
}

func startApp(t *testing.T, app *Application, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	select {
	case <-app.Ready():
	case err := <-done:
		t.Fatalf("Run returned before ready: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Ready")
	}
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Run to return")
		return nil
	}
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		b.WriteRune(r)
	}
	return b.String()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	if got := app.Controller().Len(); got != 3 {
		t.Errorf("behaviors = %d, want 3", got)
	}
	for _, k := range []string{"wheel-pan", "arrow-pan", "vim-pan"} {
		if _, ok := app.Controller().Get(k); !ok {
			t.Errorf("behavior %q not attached", k)
		}
	}
	if got := len(app.Graph().Nodes()); got == 0 {
		t.Error("demo graph has no nodes")
	}
}

func TestNewMissingConfig(t *testing.T) {
	_, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		Logger:     discardLogger(),
		Screen:     tcell.NewSimulationScreen(""),
	})

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("error = %v, want *InitError", err)
	}
	if initErr.Component != "config" {
		t.Errorf("component = %q, want config", initErr.Component)
	}
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestRunStatusLine(t *testing.T) {
	app, screen := newTestApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := startApp(t, app, ctx)

	_, h := screen.Size()
	status := rowText(screen, h-1)
	if !strings.HasPrefix(status, " offset (0, 0)") {
		t.Errorf("status = %q", status)
	}
	if !strings.Contains(status, "wheel pan") {
		t.Errorf("status missing wheel help: %q", status)
	}

	cancel()
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run after cancel = %v, want nil", err)
	}
}

func TestRunWheelThenQuit(t *testing.T) {
	app, screen := newTestApp(t, Options{})
	done := startApp(t, app, context.Background())

	screen.InjectMouse(10, 5, tcell.WheelDown, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := waitRun(t, done); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if got, want := app.Graph().Position(), (graph.Point{X: 0, Y: -3}); got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestRunTwice(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := startApp(t, app, ctx)

	if err := app.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	waitRun(t, done)
}

func TestApplyReconciles(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	f, err := config.Parse("reload.toml", []byte(`
[[behaviors]]
type = "scroll-canvas"
key = "wheel-pan"
direction = "y"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	before, _ := app.Controller().Get("wheel-pan")

	if err := app.apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := app.Controller().Len(); got != 1 {
		t.Errorf("behaviors = %d, want 1", got)
	}
	after, ok := app.Controller().Get("wheel-pan")
	if !ok {
		t.Fatal("wheel-pan removed")
	}
	if after != before {
		t.Error("wheel-pan recreated instead of updated")
	}
}

func TestConfigFileReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphview.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write(`
[[behaviors]]
type = "scroll-canvas"
key = "a"
`)

	app, _ := newTestApp(t, Options{ConfigPath: path})
	ctx, cancel := context.WithCancel(context.Background())
	done := startApp(t, app, ctx)
	defer func() {
		cancel()
		waitRun(t, done)
	}()

	write(`
[[behaviors]]
type = "scroll-canvas"
key = "a"

[[behaviors]]
type = "scroll-canvas"
key = "b"
direction = "x"
`)

	deadline := time.Now().Add(3 * time.Second)
	for app.Controller().Len() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("behaviors = %d after reload, want 2", app.Controller().Len())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestShutdownWithoutRun(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.Shutdown()
	app.Shutdown()

	if !app.Graph().Destroyed() {
		t.Error("graph not destroyed")
	}
	if app.Controller().Len() != 0 {
		t.Error("behaviors still attached")
	}
}
