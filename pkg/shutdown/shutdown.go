// Package shutdown keeps a process-wide list of cleanup hooks that run when
// the program exits, whether it returns normally or is interrupted.
//
// Hooks run in reverse registration order, each at most once. A hook that is
// unregistered before Run is never called.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/giantswarm/mcpbind/pkg/logging"
)

// Handle identifies a registered hook.
type Handle struct {
	name string
	fn   func()
	once sync.Once
}

// Unregister removes the hook. It is a no-op when the hook already ran or was
// already removed.
func (h *Handle) Unregister() {
	if h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for i, other := range hooks {
		if other == h {
			hooks = append(hooks[:i], hooks[i+1:]...)
			return
		}
	}
}

func (h *Handle) run() {
	h.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Warn("Shutdown", "hook %s panicked: %v", h.name, r)
			}
		}()
		logging.Debug("Shutdown", "running hook %s", h.name)
		h.fn()
	})
}

var (
	mu    sync.Mutex
	hooks []*Handle
)

// Register adds fn to the hooks run by Run.
func Register(name string, fn func()) *Handle {
	h := &Handle{name: name, fn: fn}
	mu.Lock()
	hooks = append(hooks, h)
	mu.Unlock()
	return h
}

// Pending returns the number of registered hooks that have not run yet.
func Pending() int {
	mu.Lock()
	defer mu.Unlock()
	return len(hooks)
}

// Run executes and removes all registered hooks, newest first.
func Run() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		pending[i].run()
	}
}

// NotifyContext returns a context cancelled on SIGINT or SIGTERM (or the
// given signals). The first signal also runs the registered hooks.
func NotifyContext(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			logging.Info("Shutdown", "received %s, cleaning up", sig)
			Run()
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
