// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// 存储配置
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 代币工厂配置 - 对应配置文件中的 tokenfactory 字段
	TokenFactory *UserTokenFactoryConfig `json:"tokenfactory,omitempty"`
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用HTTP服务（默认true）
	HTTPHost    *string `json:"http_host,omitempty"`    // 监听地址
	HTTPPort    *int    `json:"http_port,omitempty"`    // HTTP监听端口

	HTTPEnableWebSocket *bool `json:"http_enable_websocket,omitempty"` // 是否启用事件推送（默认true）
	HTTPEnableMetrics   *bool `json:"http_enable_metrics,omitempty"`   // 是否暴露 /metrics（默认true）

	// 每个客户端IP每秒请求数，0 表示不限流
	ReadRateLimit  *int `json:"read_rate_limit,omitempty"`
	WriteRateLimit *int `json:"write_rate_limit,omitempty"`
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	// Backend 存储后端：badger | redis
	Backend  *string `json:"backend,omitempty"`
	DataRoot *string `json:"data_root,omitempty"` // 数据根目录（data_root）
	InMemory *bool   `json:"in_memory,omitempty"` // badger 内存模式（开发/测试）

	Redis *UserRedisConfig `json:"redis,omitempty"`
}

// UserRedisConfig 用户Redis配置
type UserRedisConfig struct {
	Addr      *string `json:"addr,omitempty"`
	Password  *string `json:"password,omitempty"`
	DB        *int    `json:"db,omitempty"`
	KeyPrefix *string `json:"key_prefix,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
	ToFile   *bool   `json:"to_file,omitempty"`   // 是否同时写入文件
}

// UserTokenFactoryConfig 用户代币工厂配置
type UserTokenFactoryConfig struct {
	// ContractAddress 本实例地址，所创建面额的 issuer 段
	ContractAddress *string `json:"contract_address,omitempty"`
	// DenomPrefix 面额前缀字面量（默认 factory）
	DenomPrefix *string `json:"denom_prefix,omitempty"`
	// AddressVersion 地址版本字节（默认 0x1C）
	AddressVersion *int `json:"address_version,omitempty"`

	Querier *UserQuerierConfig `json:"querier,omitempty"`
}

// UserQuerierConfig 权威索引 JSON-RPC 端点
type UserQuerierConfig struct {
	Endpoint  *string `json:"endpoint,omitempty"`
	TimeoutMs *int    `json:"timeout_ms,omitempty"`
}
