// Package storage 提供存储管理功能
package storage

import (
	"context"

	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
	Logger    log.Logger      // 日志记录器
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	Store storageInterface.Store
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 提供存储服务
// 根据配置初始化存储后端，并在应用停止时关闭
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	store, err := CreateStore(context.Background(), ServiceInput{
		Provider: params.Provider,
		Logger:   params.Logger,
	})
	if err != nil {
		return ModuleOutput{}, err
	}

	logger := params.Logger
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if logger != nil {
				logger.Info("正在关闭存储服务...")
			}
			if err := store.Close(); err != nil {
				if logger != nil {
					logger.Errorf("关闭存储失败: %v", err)
				}
				return err
			}
			if logger != nil {
				logger.Info("存储服务已安全关闭")
			}
			return nil
		},
	})

	return ModuleOutput{Store: store}, nil
}
