package config

import (
	"github.com/weisyn/tokenfactory/internal/config/api"
	"github.com/weisyn/tokenfactory/internal/config/log"
	"github.com/weisyn/tokenfactory/internal/config/storage"
	"github.com/weisyn/tokenfactory/internal/config/storage/badger"
	"github.com/weisyn/tokenfactory/internal/config/storage/redis"
	"github.com/weisyn/tokenfactory/internal/config/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// Provider 实现配置提供者接口
//
// 每个 GetXxx 把对应的用户配置交给子包的 New，由子包处理默认值与覆盖。
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAppConfig 获取原始用户配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetStorage 获取存储后端选择
func (p *Provider) GetStorage() *storage.StorageOptions {
	return storage.New(p.appConfig.Storage).GetOptions()
}

// GetBadger 获取BadgerDB存储配置
func (p *Provider) GetBadger() *badger.BadgerOptions {
	return badger.New(p.appConfig.Storage).GetOptions()
}

// GetRedis 获取Redis存储配置
func (p *Provider) GetRedis() *redis.RedisOptions {
	return redis.New(p.appConfig.Storage).GetOptions()
}

// GetTokenFactory 获取代币工厂配置
func (p *Provider) GetTokenFactory() *tokenfactory.TokenFactoryOptions {
	return tokenfactory.New(p.appConfig.TokenFactory).GetOptions()
}
