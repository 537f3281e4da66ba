package types

import "time"

// ExecutedEvent 变更请求提交成功
type ExecutedEvent struct {
	RequestID  string            `json:"request_id"`
	Method     string            `json:"method"`
	Sender     string            `json:"sender"`
	Messages   []TokenFactoryMsg `json:"messages"`
	Attributes []Attribute       `json:"attributes"`
	Timestamp  time.Time         `json:"timestamp"`
}

// RejectedEvent 变更请求被拒绝，本地状态未改变
type RejectedEvent struct {
	RequestID string    `json:"request_id"`
	Method    string    `json:"method"`
	Sender    string    `json:"sender"`
	Kind      string    `json:"kind"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
