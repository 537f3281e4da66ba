package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ConfigStore 单例配置存储
type ConfigStore struct{}

var _ tfinterfaces.ConfigStore = (*ConfigStore)(nil)

// NewConfigStore 创建配置存储
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Load 读取配置，不存在时返回 Uninitialized
func (s *ConfigStore) Load(ctx context.Context, tx storage.Transaction) (*types.Configuration, error) {
	data, err := tx.Get([]byte(ConfigKey))
	if err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	if data == nil {
		return nil, types.NewUninitializedError()
	}

	var cfg types.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// Exists 配置是否已创建
func (s *ConfigStore) Exists(ctx context.Context, tx storage.Transaction) (bool, error) {
	exists, err := tx.Exists([]byte(ConfigKey))
	if err != nil {
		return false, fmt.Errorf("检查配置失败: %w", err)
	}
	return exists, nil
}

// Save 无条件覆盖
func (s *ConfigStore) Save(ctx context.Context, tx storage.Transaction, cfg *types.Configuration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("编码配置失败: %w", err)
	}
	if err := tx.Set([]byte(ConfigKey), data); err != nil {
		return fmt.Errorf("写入配置失败: %w", err)
	}
	return nil
}
