package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ErrIndexQuery 透传查询时权威索引返回错误
var ErrIndexQuery = errors.New("权威索引查询失败")

// Query 执行只读请求
//
// GetDenom / GetMetadata / DenomsByCreator / GetParams / GetAdmin 直接透传给
// 权威索引；Config / DenomOwner / DenomRecords 读取本地状态。返回值为对应的
// *types.XxxResponse。
func (d *Dispatcher) Query(ctx context.Context, msg types.QueryMsg) (interface{}, error) {
	if _, err := msg.Method(); err != nil {
		return nil, err
	}

	switch {
	case msg.GetDenom != nil:
		return passThrough(d.querier.FullDenom(ctx, msg.GetDenom.CreatorAddress, msg.GetDenom.Subdenom))
	case msg.GetMetadata != nil:
		return passThrough(d.querier.Metadata(ctx, msg.GetMetadata.Denom))
	case msg.DenomsByCreator != nil:
		return passThrough(d.querier.DenomsByCreator(ctx, msg.DenomsByCreator.Creator))
	case msg.GetParams != nil:
		return passThrough(d.querier.Params(ctx))
	case msg.GetAdmin != nil:
		return passThrough(d.querier.Admin(ctx, msg.GetAdmin.Denom))
	case msg.Config != nil:
		return d.queryConfig(ctx)
	case msg.DenomOwner != nil:
		return d.queryDenomOwner(ctx, msg.DenomOwner.Denom)
	default:
		return d.queryDenomRecords(ctx)
	}
}

func passThrough[T any](resp *T, err error) (interface{}, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexQuery, err)
	}
	return resp, nil
}

// readOnly 在只读事务中执行，事务内没有写入
func (d *Dispatcher) readOnly(ctx context.Context, fn func(tx storage.Transaction) error) error {
	return d.store.RunInTransaction(ctx, fn)
}

func (d *Dispatcher) queryConfig(ctx context.Context) (interface{}, error) {
	var resp *types.ConfigResponse
	err := d.readOnly(ctx, func(tx storage.Transaction) error {
		cfg, err := d.configs.Load(ctx, tx)
		if err != nil {
			return err
		}
		resp = &types.ConfigResponse{Owner: cfg.Owner, CreationFee: cfg.CreationFee}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (d *Dispatcher) queryDenomOwner(ctx context.Context, denom string) (interface{}, error) {
	resp := &types.DenomOwnerResponse{Denom: denom}
	err := d.readOnly(ctx, func(tx storage.Transaction) error {
		owner, found, err := d.registry.Get(ctx, tx, denom)
		if err != nil {
			return err
		}
		resp.Owner, resp.Found = owner, found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (d *Dispatcher) queryDenomRecords(ctx context.Context) (interface{}, error) {
	var records []types.DenomRecord
	err := d.readOnly(ctx, func(tx storage.Transaction) error {
		var err error
		records, err = d.registry.List(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.DenomRecordsResponse{Records: records}, nil
}
