package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	wstypes "github.com/weisyn/tokenfactory/internal/api/websocket/types"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// sendQueueSize 每个连接的待发送队列长度，队列满时丢弃事件
const sendQueueSize = 64

// client 一个 WebSocket 连接的发送端
type client struct {
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient() *client {
	return &client{
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

// enqueue 非阻塞入队，连接已关闭或队列已满时返回 false
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Subscription 订阅信息
type Subscription struct {
	ID     string
	Type   string
	Filter wstypes.Filter
	client *client
}

// SubscriptionManager 订阅管理器
//
// 事件总线上只挂两个处理器（executed / rejected），由管理器按订阅分发。
// 事件处理在发布方的调用栈上执行，因此这里只做入队，不做网络写。
type SubscriptionManager struct {
	logger        *zap.Logger
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	dropped       atomic.Uint64
}

// NewSubscriptionManager 创建订阅管理器
func NewSubscriptionManager(logger *zap.Logger) *SubscriptionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionManager{
		logger:        logger,
		subscriptions: make(map[string]*Subscription),
	}
}

// Subscribe 创建订阅
func (m *SubscriptionManager) Subscribe(c *client, subType string, filter wstypes.Filter) (string, error) {
	switch subType {
	case wstypes.SubscriptionExecuted, wstypes.SubscriptionRejected:
	default:
		return "", fmt.Errorf("不支持的订阅类型: %s", subType)
	}

	id := fmt.Sprintf("0x%s", uuid.New().String()[:8])

	m.mu.Lock()
	m.subscriptions[id] = &Subscription{ID: id, Type: subType, Filter: filter, client: c}
	m.mu.Unlock()

	m.logger.Debug("New subscription created",
		zap.String("id", id),
		zap.String("type", subType),
		zap.String("method_filter", filter.Method),
		zap.String("sender_filter", filter.Sender))
	return id, nil
}

// Unsubscribe 取消订阅，订阅不存在或不属于该连接时返回 false
func (m *SubscriptionManager) Unsubscribe(c *client, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok || sub.client != c {
		return false
	}
	delete(m.subscriptions, id)
	return true
}

// CleanupByClient 清理连接的全部订阅
func (m *SubscriptionManager) CleanupByClient(c *client) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, sub := range m.subscriptions {
		if sub.client == c {
			delete(m.subscriptions, id)
			removed++
		}
	}
	return removed
}

// Count 当前订阅数
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Dropped 因队列满而丢弃的通知数
func (m *SubscriptionManager) Dropped() uint64 {
	return m.dropped.Load()
}

// onExecuted 事件总线处理器
func (m *SubscriptionManager) onExecuted(e *types.ExecutedEvent) {
	m.dispatch(wstypes.SubscriptionExecuted, e.Method, e.Sender, e)
}

// onRejected 事件总线处理器
func (m *SubscriptionManager) onRejected(e *types.RejectedEvent) {
	m.dispatch(wstypes.SubscriptionRejected, e.Method, e.Sender, e)
}

func (m *SubscriptionManager) dispatch(subType, method, sender string, payload interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		if sub.Type != subType || !sub.Filter.Matches(method, sender) {
			continue
		}
		data, err := json.Marshal(wstypes.Notification{
			JSONRPC: "2.0",
			Method:  wstypes.MethodSubscription,
			Params:  wstypes.SubscriptionEvent{Subscription: sub.ID, Result: payload},
		})
		if err != nil {
			m.logger.Error("Failed to marshal notification", zap.Error(err))
			return
		}
		if !sub.client.enqueue(data) {
			m.dropped.Add(1)
			m.logger.Warn("订阅队列已满，丢弃事件", zap.String("id", sub.ID))
		}
	}
}
