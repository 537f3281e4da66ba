package app

import (
	"go.uber.org/fx"

	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径（优先级高于embeddedConfig）
	configFilePath string

	// 嵌入的默认配置内容
	embeddedConfig []byte

	// 已解析的用户配置，设置后不再读取文件
	appConfig *types.AppConfig

	// API支持开关 (默认启用)
	enableAPI bool

	// 跳过环境变量覆盖，测试使用
	skipEnv bool

	// 附加的fx选项，测试时用于替换或取出组件
	extra []fx.Option
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容，未指定配置文件时使用
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接使用已解析的配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithAPI 启用API模块
func WithAPI() Option {
	return func(o *options) {
		o.enableAPI = true
	}
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// WithoutEnvOverrides 不读取 TOKENFACTORY_* 环境变量
func WithoutEnvOverrides() Option {
	return func(o *options) {
		o.skipEnv = true
	}
}

// WithFxOptions 追加fx选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, opts...)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		// API默认启用
		enableAPI: true,
	}

	// 应用自定义选项
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
