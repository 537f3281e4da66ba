package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// DenomRegistry 面额所有者登记
type DenomRegistry struct{}

var _ tfinterfaces.DenomRegistry = (*DenomRegistry)(nil)

// NewDenomRegistry 创建面额登记
func NewDenomRegistry() *DenomRegistry {
	return &DenomRegistry{}
}

// Get 查询所有者
func (r *DenomRegistry) Get(ctx context.Context, tx storage.Transaction, denom string) (string, bool, error) {
	data, err := tx.Get(denomOwnerKey(denom))
	if err != nil {
		return "", false, fmt.Errorf("读取面额所有者失败: %w", err)
	}
	if data == nil {
		return "", false, nil
	}
	var owner string
	if err := json.Unmarshal(data, &owner); err != nil {
		return "", false, fmt.Errorf("解析面额所有者失败: %w", err)
	}
	return owner, true, nil
}

// Put 插入或覆盖
func (r *DenomRegistry) Put(ctx context.Context, tx storage.Transaction, denom, owner string) error {
	data, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("编码面额所有者失败: %w", err)
	}
	if err := tx.Set(denomOwnerKey(denom), data); err != nil {
		return fmt.Errorf("写入面额所有者失败: %w", err)
	}
	return nil
}

// List 按面额排序返回全部登记
func (r *DenomRegistry) List(ctx context.Context, tx storage.Transaction) ([]types.DenomRecord, error) {
	entries, err := tx.PrefixScan([]byte(DenomOwnerPrefix))
	if err != nil {
		return nil, fmt.Errorf("扫描面额登记失败: %w", err)
	}

	records := make([]types.DenomRecord, 0, len(entries))
	for key, data := range entries {
		var owner string
		if err := json.Unmarshal(data, &owner); err != nil {
			return nil, fmt.Errorf("解析面额所有者失败 %s: %w", key, err)
		}
		records = append(records, types.DenomRecord{
			Denom: strings.TrimPrefix(key, DenomOwnerPrefix),
			Owner: owner,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Denom < records[j].Denom })
	return records, nil
}
