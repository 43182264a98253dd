package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOrderAndOnce(t *testing.T) {
	t.Cleanup(Run)

	var order []string
	Register("first", func() { order = append(order, "first") })
	Register("second", func() { order = append(order, "second") })
	Register("third", func() { order = append(order, "third") })
	assert.Equal(t, 3, Pending())

	Run()
	Run()

	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Equal(t, 0, Pending())
}

func TestUnregister(t *testing.T) {
	t.Cleanup(Run)

	called := false
	h := Register("gone", func() { called = true })
	h.Unregister()
	h.Unregister()

	var nilHandle *Handle
	nilHandle.Unregister()

	Run()
	assert.False(t, called)
}

func TestPanickingHookDoesNotStopOthers(t *testing.T) {
	t.Cleanup(Run)

	called := false
	Register("ok", func() { called = true })
	Register("bad", func() { panic("nope") })

	assert.NotPanics(t, Run)
	assert.True(t, called)
}

func TestNotifyContextRunsHooksOnSignal(t *testing.T) {
	t.Cleanup(Run)

	ran := make(chan struct{})
	Register("on-signal", func() { close(ran) })

	ctx, cancel := NotifyContext(context.Background(), syscall.SIGUSR1)
	defer cancel()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("hook did not run")
	}
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestNotifyContextCancel(t *testing.T) {
	ctx, cancel := NotifyContext(context.Background(), syscall.SIGUSR2)
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
