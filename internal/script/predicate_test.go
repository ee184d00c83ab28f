package script

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

func TestCompileEval(t *testing.T) {
	wheel := mouse.NewWheelEvent(3, -4, mouse.Position{X: 1, Y: 2}, key.ModShift)
	ctrlUp := key.Down(key.KeyUp, key.ModCtrl)
	drag := mouse.PointerEvent{Button: mouse.ButtonLeft, Action: mouse.ActionDrag, Delta: mouse.Position{X: 2}}

	tests := []struct {
		name string
		src  string
		ev   any
		want bool
	}{
		{"literal true", "true", nil, true},
		{"literal false", "false", nil, false},
		{"wheel type", `event.type == "wheel"`, wheel, true},
		{"wheel delta", "event.delta_y < 0 and event.delta_x == 3", wheel, true},
		{"wheel modifier", "not event.shift", wheel, false},
		{"key name", `event.key == "Up" and event.ctrl`, ctrlUp, true},
		{"key action", `event.action == "down"`, ctrlUp, true},
		{"drag", `event.type == "drag" and event.button == "left" and event.delta_x == 2`, drag, true},
		{"unknown", `event.type == "unknown"`, "foreign", true},
		{"chunk", "if event.type == \"key\" then\n  return false\nend\nreturn true", wheel, true},
		{"chunk returns nothing", "local x = 1", wheel, false},
		{"nil result", "nil", wheel, false},
		{"number is truthy", "0", wheel, true},
		{"string library", `string.upper("a") == "A"`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.src, err)
			}
			defer p.Close()

			got, err := p.Eval(tt.ev)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile("   "); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Compile(blank) = %v, want ErrEmptySource", err)
	}

	_, err := Compile("event.type ==")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Compile(bad) = %v, want *CompileError", err)
	}
	if ce.Source != "event.type ==" || ce.Unwrap() == nil {
		t.Errorf("CompileError = %+v", ce)
	}
}

func TestSandbox(t *testing.T) {
	for _, src := range []string{
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
		`dofile("/tmp/x.lua")`,
		`require("os")`,
		`load("return 1")()`,
	} {
		t.Run(src, func(t *testing.T) {
			p, err := Compile(src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			defer p.Close()
			if _, err := p.Eval(nil); err == nil {
				t.Error("Eval should fail for a sandboxed call")
			}
		})
	}
}

func TestEvalTimeout(t *testing.T) {
	p, err := Compile("while true do end", WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Close()

	if _, err := p.Eval(nil); !errors.Is(err, ErrTimeout) {
		t.Errorf("Eval = %v, want ErrTimeout", err)
	}
	if ok, err := p.Eval(nil); err == nil || ok {
		t.Errorf("second Eval = %v, %v, want a timeout again", ok, err)
	}
}

func TestFunc(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := Compile(`error("boom")`, WithLogger(quiet))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer p.Close()
	if p.Func()(nil) {
		t.Error("a failing predicate should evaluate to false")
	}

	ok, err := Compile("event.type == 'key'", WithLogger(quiet))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer ok.Close()
	if !ok.Func()(key.Down(key.KeyEnter, key.ModNone)) {
		t.Error("predicate should accept a key event")
	}
}

func TestClose(t *testing.T) {
	p, err := Compile("true")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	p.Close()
	p.Close()

	if _, err := p.Eval(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Eval after Close = %v, want ErrClosed", err)
	}
	if p.Source() != "true" {
		t.Errorf("Source() = %q", p.Source())
	}
}
