package auth

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionNotifier(t *testing.T) {
	n := NewSessionNotifier()
	var first, second atomic.Int32

	unsubscribe := n.Subscribe(func(ctx context.Context) { first.Add(1) })
	n.Subscribe(func(ctx context.Context) { second.Add(1) })

	n.Notify(context.Background())
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())

	unsubscribe()
	n.Notify(context.Background())
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(2), second.Load())
}

func TestSessionNotifier_UnsubscribeFromHandler(t *testing.T) {
	n := NewSessionNotifier()
	var calls atomic.Int32

	var unsubscribe func()
	unsubscribe = n.Subscribe(func(ctx context.Context) {
		calls.Add(1)
		unsubscribe()
	})

	assert.NotPanics(t, func() {
		n.Notify(context.Background())
		n.Notify(context.Background())
	})
	assert.Equal(t, int32(1), calls.Load())
}

func TestSessionNotifier_NoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSessionNotifier().Notify(context.Background())
	})
}
