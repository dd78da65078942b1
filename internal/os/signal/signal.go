// Package signal helps to react to OS interrupt signals.
package signal

import (
	"context"
	"os"
	"os/signal"
)

// NotifierWithContext calls fn for every signal received until ctx is done.
func NotifierWithContext(ctx context.Context, fn func(sig os.Signal), sigs ...os.Signal) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	go func() {
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				fn(sig)
			}
		}
	}()
}

// NotifyContext returns a context that is cancelled with a ContextCanceledError cause when one of the interrupt
// signals is received.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	if len(InterruptSignals) > 0 {
		NotifierWithContext(ctx, func(sig os.Signal) {
			cancel(NewContextCanceledError(sig))
		}, InterruptSignals...)
	}

	return ctx, func() { cancel(nil) }
}
