// Package guard 实现代币工厂的授权检查
//
// 每个检查要么通过，要么返回 *types.TokenFactoryError；状态读取使用
// 调用方的事务，保证检查与随后的写入看到同一份数据。
package guard

import (
	"context"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// Config 授权检查依赖
type Config struct {
	Configs   tfinterfaces.ConfigStore
	Registry  tfinterfaces.DenomRegistry
	Querier   tfinterfaces.TokenQuerier
	Addresses tfinterfaces.AddressValidator
	// DenomPrefix 面额前缀字面量，比较时忽略大小写
	DenomPrefix string
	Logger      log.Logger
}

// Guard 授权检查器
type Guard struct {
	configs     tfinterfaces.ConfigStore
	registry    tfinterfaces.DenomRegistry
	querier     tfinterfaces.TokenQuerier
	addresses   tfinterfaces.AddressValidator
	denomPrefix string
	logger      log.Logger
}

// New 创建授权检查器
func New(cfg Config) *Guard {
	prefix := cfg.DenomPrefix
	if prefix == "" {
		prefix = DefaultDenomPrefix
	}
	return &Guard{
		configs:     cfg.Configs,
		registry:    cfg.Registry,
		querier:     cfg.Querier,
		addresses:   cfg.Addresses,
		denomPrefix: prefix,
		logger:      cfg.Logger,
	}
}

// DenomPrefix 返回面额前缀
func (g *Guard) DenomPrefix() string {
	return g.denomPrefix
}

// RequireDenomOwner 调用方必须是面额的登记所有者
//
// 面额未登记同样视为未授权，不区分两种情况。
func (g *Guard) RequireDenomOwner(ctx context.Context, tx storage.Transaction, denom, caller string) error {
	owner, found, err := g.registry.Get(ctx, tx, denom)
	if err != nil {
		return err
	}
	if !found || owner != caller {
		return types.NewUnauthorizedError()
	}
	return nil
}

// RequireConfigOwner 调用方必须是配置所有者，返回已加载的配置
func (g *Guard) RequireConfigOwner(ctx context.Context, tx storage.Transaction, caller string) (*types.Configuration, error) {
	cfg, err := g.configs.Load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if cfg.Owner != caller {
		return nil, types.NewUnauthorizedError()
	}
	return cfg, nil
}

// RequireAddress 目标地址格式校验
func (g *Guard) RequireAddress(address string) error {
	if g.addresses == nil {
		return nil
	}
	if err := g.addresses.ValidateAddress(address); err != nil {
		return types.NewInvalidAddressError(address, err.Error())
	}
	return nil
}

// RequireNonZero 数量必须为正
func RequireNonZero(amount types.Amount) error {
	if amount.IsZero() {
		return types.NewZeroAmountError()
	}
	return nil
}
