// Package types 定义事件推送的 JSON-RPC 消息结构
package types

import "encoding/json"

// 订阅类型
const (
	SubscriptionExecuted = "executed" // 已提交的变更请求
	SubscriptionRejected = "rejected" // 被拒绝的变更请求
)

// 方法名
const (
	MethodSubscribe    = "tokenfactory_subscribe"
	MethodUnsubscribe  = "tokenfactory_unsubscribe"
	MethodSubscription = "tokenfactory_subscription"
)

// Request JSON-RPC 请求
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// Response JSON-RPC 响应
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error JSON-RPC 错误对象
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 标准错误码
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Filter 订阅过滤条件，空字段不过滤
type Filter struct {
	Method string `json:"method,omitempty"`
	Sender string `json:"sender,omitempty"`
}

// Matches 判断事件是否满足过滤条件
func (f Filter) Matches(method, sender string) bool {
	if f.Method != "" && f.Method != method {
		return false
	}
	if f.Sender != "" && f.Sender != sender {
		return false
	}
	return true
}

// SubscriptionEvent 推送给订阅者的事件
type SubscriptionEvent struct {
	Subscription string      `json:"subscription"` // 订阅ID
	Result       interface{} `json:"result"`       // *types.ExecutedEvent 或 *types.RejectedEvent
}

// Notification 服务端主动推送的通知
type Notification struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  SubscriptionEvent `json:"params"`
}
