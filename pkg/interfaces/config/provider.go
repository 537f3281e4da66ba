// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/tokenfactory/internal/config/api"
	logconfig "github.com/weisyn/tokenfactory/internal/config/log"
	storageconfig "github.com/weisyn/tokenfactory/internal/config/storage"
	badgerconfig "github.com/weisyn/tokenfactory/internal/config/storage/badger"
	redisconfig "github.com/weisyn/tokenfactory/internal/config/storage/redis"
	tokenfactoryconfig "github.com/weisyn/tokenfactory/internal/config/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppConfig 获取原始用户配置（已应用环境变量覆盖）
	GetAppConfig() *types.AppConfig

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetStorage 获取存储后端选择
	GetStorage() *storageconfig.StorageOptions

	// GetBadger 获取BadgerDB存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetRedis 获取Redis存储配置
	GetRedis() *redisconfig.RedisOptions

	// GetTokenFactory 获取代币工厂配置
	GetTokenFactory() *tokenfactoryconfig.TokenFactoryOptions
}
