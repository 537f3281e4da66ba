package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// envPrefix 环境变量统一前缀
const envPrefix = "TOKENFACTORY_"

// envOverrides 环境变量覆盖项，未设置的变量保持 nil，不覆盖配置文件
type envOverrides struct {
	LogLevel    *string `env:"LOG_LEVEL"`
	LogFilePath *string `env:"LOG_FILE_PATH"`

	HTTPHost *string `env:"HTTP_HOST"`
	HTTPPort *int    `env:"HTTP_PORT"`

	StorageBackend  *string `env:"STORAGE_BACKEND"`
	StorageDataRoot *string `env:"STORAGE_DATA_ROOT"`
	StorageInMemory *bool   `env:"STORAGE_IN_MEMORY"`
	RedisAddr       *string `env:"REDIS_ADDR"`
	RedisPassword   *string `env:"REDIS_PASSWORD"`
	RedisDB         *int    `env:"REDIS_DB"`

	ContractAddress  *string `env:"CONTRACT_ADDRESS"`
	DenomPrefix      *string `env:"DENOM_PREFIX"`
	QuerierEndpoint  *string `env:"QUERIER_ENDPOINT"`
	QuerierTimeoutMs *int    `env:"QUERIER_TIMEOUT_MS"`
}

// ApplyEnvOverrides 用 TOKENFACTORY_* 环境变量覆盖配置文件中的值
func ApplyEnvOverrides(appConfig *types.AppConfig) error {
	return applyEnvOverrides(appConfig, env.Options{Prefix: envPrefix})
}

func applyEnvOverrides(appConfig *types.AppConfig, opts env.Options) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("解析环境变量失败: %w", err)
	}

	if o.LogLevel != nil || o.LogFilePath != nil {
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		setIfNotNil(&appConfig.Log.Level, o.LogLevel)
		setIfNotNil(&appConfig.Log.FilePath, o.LogFilePath)
	}

	if o.HTTPHost != nil || o.HTTPPort != nil {
		if appConfig.API == nil {
			appConfig.API = &types.UserAPIConfig{}
		}
		setIfNotNil(&appConfig.API.HTTPHost, o.HTTPHost)
		setIfNotNil(&appConfig.API.HTTPPort, o.HTTPPort)
	}

	if o.StorageBackend != nil || o.StorageDataRoot != nil || o.StorageInMemory != nil ||
		o.RedisAddr != nil || o.RedisPassword != nil || o.RedisDB != nil {
		if appConfig.Storage == nil {
			appConfig.Storage = &types.UserStorageConfig{}
		}
		setIfNotNil(&appConfig.Storage.Backend, o.StorageBackend)
		setIfNotNil(&appConfig.Storage.DataRoot, o.StorageDataRoot)
		setIfNotNil(&appConfig.Storage.InMemory, o.StorageInMemory)
		if o.RedisAddr != nil || o.RedisPassword != nil || o.RedisDB != nil {
			if appConfig.Storage.Redis == nil {
				appConfig.Storage.Redis = &types.UserRedisConfig{}
			}
			setIfNotNil(&appConfig.Storage.Redis.Addr, o.RedisAddr)
			setIfNotNil(&appConfig.Storage.Redis.Password, o.RedisPassword)
			setIfNotNil(&appConfig.Storage.Redis.DB, o.RedisDB)
		}
	}

	if o.ContractAddress != nil || o.DenomPrefix != nil || o.QuerierEndpoint != nil || o.QuerierTimeoutMs != nil {
		if appConfig.TokenFactory == nil {
			appConfig.TokenFactory = &types.UserTokenFactoryConfig{}
		}
		setIfNotNil(&appConfig.TokenFactory.ContractAddress, o.ContractAddress)
		setIfNotNil(&appConfig.TokenFactory.DenomPrefix, o.DenomPrefix)
		if o.QuerierEndpoint != nil || o.QuerierTimeoutMs != nil {
			if appConfig.TokenFactory.Querier == nil {
				appConfig.TokenFactory.Querier = &types.UserQuerierConfig{}
			}
			setIfNotNil(&appConfig.TokenFactory.Querier.Endpoint, o.QuerierEndpoint)
			setIfNotNil(&appConfig.TokenFactory.Querier.TimeoutMs, o.QuerierTimeoutMs)
		}
	}

	return nil
}

func setIfNotNil[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
