package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/weisyn/tokenfactory/pkg/types"
)

// DefaultDenomPrefix 默认面额前缀
const DefaultDenomPrefix = "factory"

// FullDenom 拼接完整面额 <prefix>/<issuer>/<subdenom>
func FullDenom(prefix, issuer, subdenom string) string {
	return prefix + "/" + issuer + "/" + subdenom
}

// SplitDenom 检查面额结构并返回 issuer 与 subdenom
//
// 必须恰好三段，首段与 prefix 忽略大小写相等。
func SplitDenom(prefix, denom string) (issuer, subdenom string, err error) {
	parts := strings.Split(denom, "/")
	if len(parts) != 3 {
		return "", "", types.NewInvalidDenomError(denom,
			fmt.Sprintf("denom must have 3 parts separated by /, had %d", len(parts)))
	}
	if !strings.EqualFold(parts[0], prefix) {
		return "", "", types.NewInvalidDenomError(denom,
			fmt.Sprintf("prefix must be '%s', was %s", prefix, parts[0]))
	}
	return parts[1], parts[2], nil
}

// ValidateDenom 检查面额结构，并向权威索引确认面额存在
//
// 结构错误不会触发索引查询；索引返回的任何错误原样嵌入 InvalidDenom。
// 每次都实时查询，不缓存。
func (g *Guard) ValidateDenom(ctx context.Context, denom string) error {
	issuer, subdenom, err := SplitDenom(g.denomPrefix, denom)
	if err != nil {
		return err
	}

	if _, err := g.querier.FullDenom(ctx, issuer, subdenom); err != nil {
		if g.logger != nil {
			g.logger.Debugf("权威索引拒绝面额 %s: %v", denom, err)
		}
		return types.NewInvalidDenomError(denom, err.Error())
	}
	return nil
}
