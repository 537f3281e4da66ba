package redis

import (
	"time"

	configtypes "github.com/weisyn/tokenfactory/pkg/types"
)

// RedisOptions Redis存储配置选项
type RedisOptions struct {
	Addr      string `json:"addr"`
	Password  string `json:"-"`
	DB        int    `json:"db"`
	KeyPrefix string `json:"key_prefix"` // 所有键的命名空间前缀

	DialTimeout time.Duration `json:"dial_timeout"`
}

// Config Redis配置实现
type Config struct {
	options *RedisOptions
}

// New 创建Redis配置实现，userConfig 为 *types.UserStorageConfig 或 nil
func New(userConfig interface{}) *Config {
	options := &RedisOptions{
		Addr:        defaultAddr,
		DB:          defaultDB,
		KeyPrefix:   defaultKeyPrefix,
		DialTimeout: defaultDialTimeout,
	}
	if storageConfig, ok := userConfig.(*configtypes.UserStorageConfig); ok && storageConfig != nil && storageConfig.Redis != nil {
		rc := storageConfig.Redis
		if rc.Addr != nil {
			options.Addr = *rc.Addr
		}
		if rc.Password != nil {
			options.Password = *rc.Password
		}
		if rc.DB != nil {
			options.DB = *rc.DB
		}
		if rc.KeyPrefix != nil {
			options.KeyPrefix = *rc.KeyPrefix
		}
	}
	return &Config{options: options}
}

// GetOptions 获取完整的Redis配置选项
func (c *Config) GetOptions() *RedisOptions {
	return c.options
}
