package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFansOut(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	bus.Publish(LevelSuccess, "saved")

	for _, ch := range []<-chan Notification{a, b} {
		n := <-ch
		assert.Equal(t, LevelSuccess, n.Level)
		assert.Equal(t, "saved", n.Message)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer without a reader; Publish must not block
	// and the newest notifications must survive.
	for i := 0; i < subscriberBuffer*3; i++ {
		bus.Publish(LevelInfo, fmt.Sprintf("msg-%d", i))
	}

	var last Notification
	for i := 0; i < subscriberBuffer; i++ {
		last = <-ch
	}
	assert.Equal(t, fmt.Sprintf("msg-%d", subscriberBuffer*3-1), last.Message)
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()

	// Channel is closed; publishing afterwards must not panic.
	bus.Publish(LevelError, "after cancel")

	_, open := <-ch
	assert.False(t, open)
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe()

	bus.Close()
	bus.Close()
	bus.Publish(LevelInfo, "ignored")

	_, open := <-ch
	require.False(t, open)
}
