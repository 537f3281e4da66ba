package tokenfactory

import (
	"context"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ConfigStore 单例配置的读写
//
// 所有方法都在调用方提供的事务内执行，由调用方决定提交或丢弃。
type ConfigStore interface {
	// Load 读取配置，不存在时返回 Uninitialized
	Load(ctx context.Context, tx storage.Transaction) (*types.Configuration, error)
	// Exists 配置是否已创建
	Exists(ctx context.Context, tx storage.Transaction) (bool, error)
	// Save 无条件覆盖
	Save(ctx context.Context, tx storage.Transaction, cfg *types.Configuration) error
}

// DenomRegistry 面额 → 所有者登记
type DenomRegistry interface {
	// Get 查询所有者，found 为 false 表示未登记
	Get(ctx context.Context, tx storage.Transaction, denom string) (owner string, found bool, err error)
	// Put 插入或覆盖
	Put(ctx context.Context, tx storage.Transaction, denom, owner string) error
	// List 按面额排序返回全部登记
	List(ctx context.Context, tx storage.Transaction) ([]types.DenomRecord, error)
}
