// Package metrics 定义代币工厂的指标记录接口
package metrics

import "time"

// OutcomeAccepted 请求被接受时的 outcome 取值
const OutcomeAccepted = "accepted"

// Recorder 指标记录器
type Recorder interface {
	// ObserveRequest 记录一次请求结果，outcome 为 accepted 或错误类别名
	ObserveRequest(method, outcome string)

	// ObserveIndexCall 记录一次权威索引调用
	ObserveIndexCall(method string, duration time.Duration, err error)
}

// NopRecorder 不记录任何指标
type NopRecorder struct{}

func (NopRecorder) ObserveRequest(string, string)                 {}
func (NopRecorder) ObserveIndexCall(string, time.Duration, error) {}
