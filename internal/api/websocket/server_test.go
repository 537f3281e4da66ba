package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wstypes "github.com/weisyn/tokenfactory/internal/api/websocket/types"
	eventbus "github.com/weisyn/tokenfactory/internal/core/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *eventbus.EventBus, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := eventbus.New(nil)
	server, err := NewServer(nil, bus)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })

	router := gin.New()
	server.RegisterRoutes(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return server, bus, "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func subscribe(t *testing.T, conn *websocket.Conn, params ...interface{}) string {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": wstypes.MethodSubscribe, "params": params,
	}))
	var resp struct {
		Result string         `json:"result"`
		Error  *wstypes.Error `json:"error"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&resp))
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.Result)
	return resp.Result
}

type notification struct {
	Method string `json:"method"`
	Params struct {
		Subscription string              `json:"subscription"`
		Result       types.ExecutedEvent `json:"result"`
	} `json:"params"`
}

func TestSubscribeReceivesExecutedEvents(t *testing.T) {
	server, bus, url := newTestServer(t)
	conn := dial(t, url)

	id := subscribe(t, conn, wstypes.SubscriptionExecuted, wstypes.Filter{Method: "mint_tokens"})
	assert.Equal(t, 1, server.Subscriptions().Count())

	// 不满足过滤条件的事件不推送
	bus.Publish(event.EventTypeTokenFactoryExecuted, &types.ExecutedEvent{RequestID: "r1", Method: "burn_tokens"})
	bus.Publish(event.EventTypeTokenFactoryExecuted, &types.ExecutedEvent{RequestID: "r2", Method: "mint_tokens", Sender: "alice"})

	var n notification
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&n))
	assert.Equal(t, wstypes.MethodSubscription, n.Method)
	assert.Equal(t, id, n.Params.Subscription)
	assert.Equal(t, "r2", n.Params.Result.RequestID)
	assert.Equal(t, "alice", n.Params.Result.Sender)
}

func TestSubscribeRejectsUnknownType(t *testing.T) {
	_, _, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"jsonrpc": "2.0", "id": 7, "method": wstypes.MethodSubscribe, "params": []string{"newHeads"},
	}))
	var resp wstypes.Response
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, wstypes.CodeServerError, resp.Error.Code)
}

func TestUnknownMethod(t *testing.T) {
	_, _, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": "eth_blockNumber"}))
	var resp wstypes.Response
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, wstypes.CodeMethodNotFound, resp.Error.Code)
}

func TestSubscriptionsCleanedUpOnDisconnect(t *testing.T) {
	server, _, url := newTestServer(t)
	conn := dial(t, url)
	subscribe(t, conn, wstypes.SubscriptionRejected)
	require.Equal(t, 1, server.Subscriptions().Count())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return server.Subscriptions().Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFilterMatches(t *testing.T) {
	assert.True(t, wstypes.Filter{}.Matches("mint_tokens", "a"))
	assert.True(t, wstypes.Filter{Sender: "a"}.Matches("mint_tokens", "a"))
	assert.False(t, wstypes.Filter{Sender: "a"}.Matches("mint_tokens", "b"))
	assert.False(t, wstypes.Filter{Method: "burn_tokens"}.Matches("mint_tokens", "a"))
}

func TestDispatchDropsWhenQueueFull(t *testing.T) {
	m := NewSubscriptionManager(nil)
	cl := newClient()
	_, err := m.Subscribe(cl, wstypes.SubscriptionExecuted, wstypes.Filter{})
	require.NoError(t, err)

	for i := 0; i < sendQueueSize+3; i++ {
		m.onExecuted(&types.ExecutedEvent{Method: "mint_tokens"})
	}
	assert.Equal(t, uint64(3), m.Dropped())
}
