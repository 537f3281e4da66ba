// Package log 定义日志记录接口
//
// 实现位于 internal/core/infrastructure/log，底层为 zap。
// 服务进程不通过日志退出，因此不提供 Fatal 级别的方法。
package log

import "go.uber.org/zap"

// Logger 日志记录器
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})

	// With 返回附加字段的子记录器，args 为交替出现的键值对
	With(args ...interface{}) Logger

	// Sync 刷新缓冲区，进程退出前调用
	Sync() error

	// GetZapLogger 底层 zap 记录器，供 gin 中间件等需要结构化字段的组件使用
	GetZapLogger() *zap.Logger
}
