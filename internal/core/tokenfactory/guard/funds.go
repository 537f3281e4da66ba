package guard

import (
	"context"
	"fmt"

	"github.com/weisyn/tokenfactory/pkg/types"
)

// RequireExactFunds 附带资金必须与所需费用完全一致（与顺序无关）
func RequireExactFunds(provided, required types.Coins) error {
	if !provided.Equal(required) {
		return types.NewInvalidFundError()
	}
	return nil
}

// CreationFee 返回当前创建费用
//
// 配置中设置了覆盖值时使用覆盖值，否则读取宿主参数。
func (g *Guard) CreationFee(ctx context.Context, cfg *types.Configuration) (types.Coins, error) {
	if cfg != nil && cfg.CreationFee != nil {
		return *cfg.CreationFee, nil
	}
	params, err := g.querier.Params(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询创建费用失败: %w", err)
	}
	return params.Params.DenomCreationFee, nil
}
