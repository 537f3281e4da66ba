// Package clock provides clock interfaces.
package clock

import "time"

// Clock 统一的时间源接口，测试中可替换为可控实现
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration
}
