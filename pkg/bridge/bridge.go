// Package bridge gives synchronous callers blocking access to asynchronous
// protocol operations.
//
// A Bridge owns one background worker goroutine, started lazily on the first
// submission. Submit hands an operation to the worker together with a
// completion slot and blocks until the slot is filled. The worker runs every
// operation in its own goroutine, so independent calls are pipelined; each
// result is delivered exactly once, to the caller that submitted it.
//
// Close is idempotent and safe for concurrent use. It first runs the
// terminate hook (typically closing the protocol session), then cancels the
// context handed to operations, stops the worker and waits a bounded time for
// outstanding operations. Callers still blocked after that receive ErrClosed.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/google/uuid"
)

// ErrClosed is returned for operations submitted to, or abandoned by, a
// closed bridge.
var ErrClosed = errors.New("bridge closed")

const (
	// DefaultTerminateTimeout bounds the terminate hook run by Close.
	DefaultTerminateTimeout = 5 * time.Second
	// DefaultJoinTimeout bounds how long Close waits for outstanding operations.
	DefaultJoinTimeout = 5 * time.Second
)

// Op is an operation run on the background context. ctx is cancelled when
// the bridge closes.
type Op func(ctx context.Context) (any, error)

// PanicError reports an operation that panicked instead of returning.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}

type outcome struct {
	value any
	err   error
}

// pendingCall lives from submission until its outcome is taken by the caller.
type pendingCall struct {
	id     string
	op     Op
	result chan outcome
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithName labels the bridge in log output.
func WithName(name string) Option {
	return func(b *Bridge) { b.name = name }
}

// WithTerminate sets the hook Close runs before stopping the worker. Its
// error is logged and otherwise ignored.
func WithTerminate(fn func(ctx context.Context) error) Option {
	return func(b *Bridge) { b.terminate = fn }
}

// WithTerminateTimeout overrides DefaultTerminateTimeout.
func WithTerminateTimeout(d time.Duration) Option {
	return func(b *Bridge) { b.terminateTimeout = d }
}

// WithJoinTimeout overrides DefaultJoinTimeout.
func WithJoinTimeout(d time.Duration) Option {
	return func(b *Bridge) { b.joinTimeout = d }
}

// Bridge runs operations on a single background context on behalf of
// blocking callers.
type Bridge struct {
	name             string
	terminate        func(ctx context.Context) error
	terminateTimeout time.Duration
	joinTimeout      time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	requests chan *pendingCall

	startOnce sync.Once
	started   atomic.Bool
	closeOnce sync.Once
	closed    atomic.Bool

	workerDone chan struct{}
	stopped    chan struct{}
	inflight   sync.WaitGroup
}

// New creates a bridge. No goroutine is started until the first Submit.
func New(opts ...Option) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		name:             "bridge",
		terminateTimeout: DefaultTerminateTimeout,
		joinTimeout:      DefaultJoinTimeout,
		ctx:              ctx,
		cancel:           cancel,
		requests:         make(chan *pendingCall),
		workerDone:       make(chan struct{}),
		stopped:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit runs op on the background context and blocks until it returns or
// the bridge closes. The operation's error is returned unchanged.
func (b *Bridge) Submit(op Op) (any, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	b.start()

	call := &pendingCall{
		id:     uuid.NewString(),
		op:     op,
		result: make(chan outcome, 1),
	}

	select {
	case b.requests <- call:
	case <-b.ctx.Done():
		return nil, ErrClosed
	}

	select {
	case out := <-call.result:
		return out.value, out.err
	case <-b.stopped:
		// The worker may have delivered just before the bridge stopped.
		select {
		case out := <-call.result:
			return out.value, out.err
		default:
		}
		logging.Debug("Bridge", "%s: call %s abandoned on close", b.name, call.id)
		return nil, ErrClosed
	}
}

// Do is the typed form of Submit.
func Do[T any](b *Bridge, op func(ctx context.Context) (T, error)) (T, error) {
	v, err := b.Submit(func(ctx context.Context) (any, error) {
		return op(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if v == nil {
		var zero T
		return zero, nil
	}
	return v.(T), nil
}

// Started reports whether the background worker has been started.
func (b *Bridge) Started() bool {
	return b.started.Load()
}

// Closed reports whether Close has been called.
func (b *Bridge) Closed() bool {
	return b.closed.Load()
}

func (b *Bridge) start() {
	b.startOnce.Do(func() {
		b.started.Store(true)
		logging.Debug("Bridge", "%s: starting background worker", b.name)
		go b.run()
	})
}

func (b *Bridge) run() {
	defer close(b.workerDone)
	for {
		select {
		case <-b.ctx.Done():
			return
		case call := <-b.requests:
			b.inflight.Add(1)
			go b.execute(call)
		}
	}
}

func (b *Bridge) execute(call *pendingCall) {
	defer b.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Bridge", nil, "%s: call %s panicked: %v", b.name, call.id, r)
			call.result <- outcome{err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()

	logging.Debug("Bridge", "%s: running call %s", b.name, call.id)
	v, err := call.op(b.ctx)
	call.result <- outcome{value: v, err: err}
}

// Close terminates the session and stops the background worker. It never
// returns an error; failures are logged. Calls after the first one wait for
// the first to finish and then return.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		logging.Debug("Bridge", "%s: closing", b.name)

		b.runTerminate()

		b.cancel()
		if b.started.Load() {
			<-b.workerDone
			if !waitTimeout(&b.inflight, b.joinTimeout) {
				logging.Warn("Bridge", "%s: outstanding calls did not finish within %s, abandoning them", b.name, b.joinTimeout)
			}
		}
		close(b.stopped)
	})
	return nil
}

func (b *Bridge) runTerminate() {
	if b.terminate == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.terminateTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("terminate hook panicked: %v", r)
			}
		}()
		done <- b.terminate(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			logging.Warn("Bridge", "%s: terminate hook failed: %v", b.name, err)
		}
	case <-ctx.Done():
		logging.Warn("Bridge", "%s: terminate hook timed out after %s", b.name, b.terminateTimeout)
	}
}

func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
