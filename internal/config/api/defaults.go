package api

import "time"

// API服务默认配置值
const (
	defaultHTTPEnabled = true
	defaultHTTPHost    = "0.0.0.0"
	defaultHTTPPort    = 8080

	defaultHTTPReadTimeout  = 15 * time.Second
	defaultHTTPWriteTimeout = 15 * time.Second
	defaultShutdownTimeout  = 10 * time.Second

	// 单个请求体上限 1MB，请求都是小型 JSON
	defaultMaxRequestSize = 1 << 20

	defaultEnableWebSocket = true
	defaultEnableMetrics   = true

	defaultReadRateLimit  = 100
	defaultWriteRateLimit = 20
)
