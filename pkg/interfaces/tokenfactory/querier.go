// Package tokenfactory 定义代币工厂授权层的协作接口
package tokenfactory

import (
	"context"

	"github.com/weisyn/tokenfactory/pkg/types"
)

// TokenQuerier 宿主代币工厂的权威索引（只读）
//
// 任何失败（面额不存在、地址格式错误、传输错误）都以 error 返回，
// 错误信息会被原样嵌入 InvalidDenom 的原因中。
type TokenQuerier interface {
	// FullDenom 根据 (creator, subdenom) 返回规范化的完整面额
	FullDenom(ctx context.Context, creator, subdenom string) (*types.FullDenomResponse, error)

	// DenomsByCreator 返回 creator 创建的全部面额
	DenomsByCreator(ctx context.Context, creator string) (*types.DenomsByCreatorResponse, error)

	// Metadata 返回面额元数据
	Metadata(ctx context.Context, denom string) (*types.MetadataResponse, error)

	// Admin 返回面额在宿主侧的管理员
	Admin(ctx context.Context, denom string) (*types.AdminResponse, error)

	// Params 返回宿主代币工厂参数
	Params(ctx context.Context) (*types.ParamsResponse, error)
}
