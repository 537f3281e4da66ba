// Package event 定义进程内事件总线接口
package event

// EventType 事件类型
type EventType string

const (
	// EventTypeTokenFactoryExecuted 变更请求提交成功后发布，参数为 *types.ExecutedEvent
	EventTypeTokenFactoryExecuted EventType = "tokenfactory.executed"
	// EventTypeTokenFactoryRejected 变更请求被拒绝后发布，参数为 *types.RejectedEvent
	EventTypeTokenFactoryRejected EventType = "tokenfactory.rejected"
)

// EventBus 事件总线接口
// 注意：事件总线由DI容器自动管理生命周期
type EventBus interface {
	// Subscribe 订阅事件
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 检查是否有回调函数
	HasCallback(eventType EventType) bool
}
