package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/types"
)

func TestEventBus(t *testing.T) {
	eventBus := New(nil)

	// 同步订阅
	var received *types.ExecutedEvent
	handler := func(e *types.ExecutedEvent) {
		received = e
	}
	require.NoError(t, eventBus.Subscribe(event.EventTypeTokenFactoryExecuted, handler))
	assert.True(t, eventBus.HasCallback(event.EventTypeTokenFactoryExecuted))

	eventBus.Publish(event.EventTypeTokenFactoryExecuted, &types.ExecutedEvent{RequestID: "r1", Method: "mint_tokens"})
	require.NotNil(t, received)
	assert.Equal(t, "r1", received.RequestID)

	// 异步订阅
	var asyncData *types.RejectedEvent
	var mu sync.Mutex
	asyncHandler := func(e *types.RejectedEvent) {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		asyncData = e
		mu.Unlock()
	}
	require.NoError(t, eventBus.SubscribeAsync(event.EventTypeTokenFactoryRejected, asyncHandler, false))
	eventBus.Publish(event.EventTypeTokenFactoryRejected, &types.RejectedEvent{RequestID: "r2"})
	eventBus.WaitAsync()

	mu.Lock()
	require.NotNil(t, asyncData)
	assert.Equal(t, "r2", asyncData.RequestID)
	mu.Unlock()

	// 取消订阅后不再接收
	require.NoError(t, eventBus.Unsubscribe(event.EventTypeTokenFactoryExecuted, handler))
	received = nil
	eventBus.Publish(event.EventTypeTokenFactoryExecuted, &types.ExecutedEvent{RequestID: "r3"})
	assert.Nil(t, received)

	assert.Equal(t, uint64(3), eventBus.PublishedCount())
}
