package config

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
)

// Module 返回配置模块
//
// 依赖 config.AppOptions（由应用层提供），输出经过验证的 config.Provider。
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(ProvideProvider),
	)
}

// ProvideProvider 由应用选项构造配置提供者并在启动前验证
func ProvideProvider(opts config.AppOptions) (config.Provider, error) {
	provider := NewProvider(opts.GetAppConfig())
	if err := Validate(provider); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return provider, nil
}
