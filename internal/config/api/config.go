package api

import (
	"fmt"
	"time"

	configtypes "github.com/weisyn/tokenfactory/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	HTTPEnabled bool   `json:"http_enabled"`
	HTTPHost    string `json:"http_host"`
	HTTPPort    int    `json:"http_port"`

	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	MaxRequestSize  int64         `json:"max_request_size"`

	EnableWebSocket bool `json:"enable_websocket"` // /v1/tokenfactory/events
	EnableMetrics   bool `json:"enable_metrics"`   // /metrics

	ReadRateLimit  int `json:"read_rate_limit"`  // 查询请求，每IP每秒
	WriteRateLimit int `json:"write_rate_limit"` // 变更请求，每IP每秒
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置，userConfig 为 *types.UserAPIConfig 或 nil
func New(userConfig interface{}) *Config {
	options := &APIOptions{
		HTTPEnabled:     defaultHTTPEnabled,
		HTTPHost:        defaultHTTPHost,
		HTTPPort:        defaultHTTPPort,
		ReadTimeout:     defaultHTTPReadTimeout,
		WriteTimeout:    defaultHTTPWriteTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
		MaxRequestSize:  defaultMaxRequestSize,
		EnableWebSocket: defaultEnableWebSocket,
		EnableMetrics:   defaultEnableMetrics,
		ReadRateLimit:   defaultReadRateLimit,
		WriteRateLimit:  defaultWriteRateLimit,
	}

	if apiConfig, ok := userConfig.(*configtypes.UserAPIConfig); ok && apiConfig != nil {
		if apiConfig.HTTPEnabled != nil {
			options.HTTPEnabled = *apiConfig.HTTPEnabled
		}
		if apiConfig.HTTPHost != nil {
			options.HTTPHost = *apiConfig.HTTPHost
		}
		if apiConfig.HTTPPort != nil {
			options.HTTPPort = *apiConfig.HTTPPort
		}
		if apiConfig.HTTPEnableWebSocket != nil {
			options.EnableWebSocket = *apiConfig.HTTPEnableWebSocket
		}
		if apiConfig.HTTPEnableMetrics != nil {
			options.EnableMetrics = *apiConfig.HTTPEnableMetrics
		}
		if apiConfig.ReadRateLimit != nil {
			options.ReadRateLimit = *apiConfig.ReadRateLimit
		}
		if apiConfig.WriteRateLimit != nil {
			options.WriteRateLimit = *apiConfig.WriteRateLimit
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}

// ListenAddr 监听地址 host:port
func (o *APIOptions) ListenAddr() string {
	return fmt.Sprintf("%s:%d", o.HTTPHost, o.HTTPPort)
}
