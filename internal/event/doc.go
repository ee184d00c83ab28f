// Package event provides the listener registry used for both the graph's
// logical event bus and the rendering surface's native element.
//
// An Emitter maps topics to ordered listener lists:
//
//	em := event.NewEmitter()
//	sub := em.On(event.TopicKeyDown, func(ctx context.Context, payload any) error {
//	    ev := payload.(key.Event)
//	    ...
//	    return nil
//	})
//	defer em.Off(sub)
//
//	err := em.Emit(ctx, event.TopicKeyDown, key.Down(key.KeyUp, key.ModNone))
//
// # Listener Identity
//
// Go functions are not comparable, so On returns a *Subscription handle and
// Off removes exactly the listener that handle names. Removing a handle
// twice, or one that belongs to another emitter, is a no-op.
//
// # Passive Listeners
//
// Listeners registered WithPassive cannot cancel the event: while they run,
// payloads implementing Cancelable have cancellation disabled, so calls to
// PreventDefault are ignored.
//
// # Dispatch
//
// Emit delivers synchronously in registration order on the caller's
// goroutine. Listeners added during an Emit first hear the next Emit;
// listeners removed during an Emit stop immediately. A panicking listener
// is recovered and reported as a *PanicError; remaining listeners still run.
//
// # Thread Safety
//
// Emitter is safe for concurrent use. Listeners must manage their own state.
package event
