package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	defaultLogLevel  = "info"
	defaultToConsole = true
	defaultFilePath  = "./data/logs/tokenfactory.log"

	// 轮转：单文件 100MB，保留 10 个备份、30 天
	defaultMaxSize    = 100
	defaultMaxBackups = 10
	defaultMaxAge     = 30
	defaultCompress   = true

	defaultEnableCaller = true
	// 仅对 Error 及以上级别输出堆栈
	defaultEnableStacktrace = true
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}
