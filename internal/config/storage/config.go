// Package storage 提供存储后端选择配置
package storage

import (
	"strings"

	configtypes "github.com/weisyn/tokenfactory/pkg/types"
)

// StorageOptions 存储后端选择
type StorageOptions struct {
	Backend string `json:"backend"` // badger | redis
}

// Config 存储配置实现
type Config struct {
	options *StorageOptions
}

// New 创建存储配置，userConfig 为 *types.UserStorageConfig 或 nil
func New(userConfig interface{}) *Config {
	options := &StorageOptions{Backend: defaultBackend}
	if storageConfig, ok := userConfig.(*configtypes.UserStorageConfig); ok && storageConfig != nil {
		if storageConfig.Backend != nil {
			options.Backend = strings.ToLower(strings.TrimSpace(*storageConfig.Backend))
		}
	}
	return &Config{options: options}
}

// GetOptions 获取存储配置选项
func (c *Config) GetOptions() *StorageOptions {
	return c.options
}

// IsSupportedBackend 是否为已知后端
func IsSupportedBackend(backend string) bool {
	return backend == BackendBadger || backend == BackendRedis
}
