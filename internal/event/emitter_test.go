package event

import (
	"context"
	"errors"
	"testing"
)

type cancelablePayload struct {
	cancelable bool
	prevented  bool
}

func (p *cancelablePayload) SetCancelable(c bool) { p.cancelable = c }

func (p *cancelablePayload) PreventDefault() {
	if p.cancelable {
		p.prevented = true
	}
}

func TestEmitterOnOff(t *testing.T) {
	em := NewEmitter()
	ctx := context.Background()

	var calls []string
	first := em.On(TopicKeyDown, func(context.Context, any) error {
		calls = append(calls, "first")
		return nil
	})
	em.On(TopicKeyDown, func(context.Context, any) error {
		calls = append(calls, "second")
		return nil
	})

	if err := em.Emit(ctx, TopicKeyDown, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v, want [first second]", calls)
	}

	if !em.Off(first) {
		t.Fatal("Off(first) = false")
	}
	if first.IsActive() {
		t.Error("removed subscription still active")
	}
	if em.Off(first) {
		t.Error("second Off(first) = true, want false")
	}

	calls = nil
	_ = em.Emit(ctx, TopicKeyDown, nil)
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls after Off = %v, want [second]", calls)
	}
	if em.Count(TopicKeyDown) != 1 {
		t.Errorf("Count = %d, want 1", em.Count(TopicKeyDown))
	}
}

func TestEmitterOffForeignOrNil(t *testing.T) {
	a, b := NewEmitter(), NewEmitter()
	sub := a.On(TopicWheel, func(context.Context, any) error { return nil })

	if b.Off(sub) {
		t.Error("foreign emitter removed subscription")
	}
	if b.Off(nil) {
		t.Error("Off(nil) = true")
	}
	if a.Count(TopicWheel) != 1 {
		t.Error("subscription lost after foreign Off")
	}
}

func TestEmitterSameHandlerTwice(t *testing.T) {
	em := NewEmitter()
	n := 0
	h := func(context.Context, any) error { n++; return nil }

	s1 := em.On(TopicWheel, h)
	s2 := em.On(TopicWheel, h)
	if s1.ID() == s2.ID() {
		t.Fatal("subscriptions share an ID")
	}

	_ = em.Emit(context.Background(), TopicWheel, nil)
	if n != 2 {
		t.Fatalf("handler ran %d times, want 2", n)
	}

	em.Off(s1)
	n = 0
	_ = em.Emit(context.Background(), TopicWheel, nil)
	if n != 1 {
		t.Fatalf("handler ran %d times after removing one, want 1", n)
	}
}

func TestEmitterErrorsAndPanics(t *testing.T) {
	em := NewEmitter()
	boom := errors.New("boom")

	em.On(TopicDrag, func(context.Context, any) error { return boom })
	em.On(TopicDrag, func(context.Context, any) error { panic("bad listener") })
	reached := false
	em.On(TopicDrag, func(context.Context, any) error { reached = true; return nil })

	err := em.Emit(context.Background(), TopicDrag, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Emit error %v does not wrap boom", err)
	}
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("Emit error %v does not report the panic", err)
	}
	if !reached {
		t.Error("delivery stopped after a failing listener")
	}

	var herr *HandlerError
	if !errors.As(err, &herr) || herr.Topic != TopicDrag {
		t.Errorf("expected *HandlerError for %s, got %v", TopicDrag, err)
	}
}

func TestEmitterNilHandler(t *testing.T) {
	em := NewEmitter()
	em.On(TopicBlur, nil)
	if err := em.Emit(context.Background(), TopicBlur, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("Emit = %v, want ErrNilHandler", err)
	}
}

func TestEmitterPassive(t *testing.T) {
	em := NewEmitter()
	em.On(TopicWheel, func(_ context.Context, p any) error {
		p.(*cancelablePayload).PreventDefault()
		return nil
	}, WithPassive())

	p := &cancelablePayload{cancelable: true}
	_ = em.Emit(context.Background(), TopicWheel, p)
	if p.prevented {
		t.Fatal("passive listener prevented default")
	}
	if !p.cancelable {
		t.Error("payload left non-cancelable after dispatch")
	}

	em.On(TopicWheel, func(_ context.Context, p any) error {
		p.(*cancelablePayload).PreventDefault()
		return nil
	})
	_ = em.Emit(context.Background(), TopicWheel, p)
	if !p.prevented {
		t.Fatal("active listener could not prevent default")
	}
}

func TestEmitterOnce(t *testing.T) {
	em := NewEmitter()
	n := 0
	sub := em.On(TopicKeyUp, func(context.Context, any) error { n++; return nil }, WithOnce())

	_ = em.Emit(context.Background(), TopicKeyUp, nil)
	_ = em.Emit(context.Background(), TopicKeyUp, nil)
	if n != 1 {
		t.Errorf("once listener ran %d times", n)
	}
	if sub.IsActive() {
		t.Error("once subscription still active")
	}
}

func TestEmitterRemoveDuringEmit(t *testing.T) {
	em := NewEmitter()
	var second *Subscription
	secondRan := false
	em.On(TopicKeyDown, func(context.Context, any) error {
		em.Off(second)
		return nil
	})
	second = em.On(TopicKeyDown, func(context.Context, any) error {
		secondRan = true
		return nil
	})

	_ = em.Emit(context.Background(), TopicKeyDown, nil)
	if secondRan {
		t.Error("listener removed mid-dispatch still ran")
	}
}

func TestEmitterClose(t *testing.T) {
	em := NewEmitter()
	sub := em.On(TopicKeyDown, func(context.Context, any) error {
		t.Error("listener ran after Close")
		return nil
	})
	em.Close()
	em.Close()

	if sub.IsActive() {
		t.Error("subscription active after Close")
	}
	_ = em.Emit(context.Background(), TopicKeyDown, nil)

	late := em.On(TopicKeyDown, func(context.Context, any) error { return nil })
	if late.IsActive() || em.Count(TopicKeyDown) != 0 {
		t.Error("On after Close registered a listener")
	}
	if em.Off(late) {
		t.Error("Off of inactive handle = true")
	}
}
