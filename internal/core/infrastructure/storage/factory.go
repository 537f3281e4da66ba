// Package storage 提供存储服务工厂实现
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	storageconfig "github.com/weisyn/tokenfactory/internal/config/storage"
	badgerconfig "github.com/weisyn/tokenfactory/internal/config/storage/badger"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/storage/redis"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// ServiceInput 定义存储服务工厂的输入参数
type ServiceInput struct {
	Provider config.Provider // 配置提供者
	Logger   log.Logger      // 日志记录器
}

// CreateStore 按配置的后端创建键值存储
//
// badger 为默认后端；redis 用于多个实例共享同一份状态。
func CreateStore(ctx context.Context, input ServiceInput) (storageInterface.Store, error) {
	provider := input.Provider
	var storageLogger log.Logger
	if input.Logger != nil {
		storageLogger = input.Logger.With("module", "storage")
	}

	backend := provider.GetStorage().Backend
	switch backend {
	case storageconfig.BackendBadger:
		badgerOptions := provider.GetBadger()
		store, err := badger.New(badgerconfig.NewFromOptions(badgerOptions), storageLogger)
		if err != nil {
			return nil, fmt.Errorf("存储初始化失败：%w", err)
		}
		if storageLogger != nil {
			if badgerOptions.InMemory {
				storageLogger.Info("✅ BadgerDB存储初始化成功（内存模式）")
			} else {
				absPath, err := filepath.Abs(badgerOptions.Path)
				if err != nil {
					absPath = badgerOptions.Path
				}
				storageLogger.Infof("✅ BadgerDB存储初始化成功，数据路径: %s", absPath)
			}
		}
		return store, nil

	case storageconfig.BackendRedis:
		store, err := redis.New(ctx, provider.GetRedis(), storageLogger)
		if err != nil {
			return nil, fmt.Errorf("存储初始化失败：%w", err)
		}
		if storageLogger != nil {
			storageLogger.Info("✅ Redis存储初始化成功")
		}
		return store, nil

	default:
		return nil, fmt.Errorf("不支持的存储后端: %q", backend)
	}
}
