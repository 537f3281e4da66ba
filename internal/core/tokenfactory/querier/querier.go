package querier

import (
	"context"
	"time"

	metricsInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/metrics"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// 宿主索引的 JSON-RPC 方法名
const (
	MethodFullDenom       = "tokenfactory_fullDenom"
	MethodDenomsByCreator = "tokenfactory_denomsByCreator"
	MethodMetadata        = "tokenfactory_metadata"
	MethodAdmin           = "tokenfactory_admin"
	MethodParams          = "tokenfactory_params"
)

// TokenQuerier 基于 JSON-RPC 的权威索引
//
// 不缓存任何结果，不重试。
type TokenQuerier struct {
	client   *Client
	recorder metricsInterface.Recorder
}

var _ tfinterfaces.TokenQuerier = (*TokenQuerier)(nil)

// NewTokenQuerier 创建权威索引客户端，recorder 可为 nil
func NewTokenQuerier(client *Client, recorder metricsInterface.Recorder) *TokenQuerier {
	if recorder == nil {
		recorder = metricsInterface.NopRecorder{}
	}
	return &TokenQuerier{client: client, recorder: recorder}
}

func (q *TokenQuerier) call(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	start := time.Now()
	err := q.client.Call(ctx, method, result, params...)
	q.recorder.ObserveIndexCall(method, time.Since(start), err)
	return err
}

// FullDenom 实现 TokenQuerier
func (q *TokenQuerier) FullDenom(ctx context.Context, creator, subdenom string) (*types.FullDenomResponse, error) {
	var resp types.FullDenomResponse
	if err := q.call(ctx, MethodFullDenom, &resp, creator, subdenom); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DenomsByCreator 实现 TokenQuerier
func (q *TokenQuerier) DenomsByCreator(ctx context.Context, creator string) (*types.DenomsByCreatorResponse, error) {
	var resp types.DenomsByCreatorResponse
	if err := q.call(ctx, MethodDenomsByCreator, &resp, creator); err != nil {
		return nil, err
	}
	if resp.Denoms == nil {
		resp.Denoms = []string{}
	}
	return &resp, nil
}

// Metadata 实现 TokenQuerier
func (q *TokenQuerier) Metadata(ctx context.Context, denom string) (*types.MetadataResponse, error) {
	var resp types.MetadataResponse
	if err := q.call(ctx, MethodMetadata, &resp, denom); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Admin 实现 TokenQuerier
func (q *TokenQuerier) Admin(ctx context.Context, denom string) (*types.AdminResponse, error) {
	var resp types.AdminResponse
	if err := q.call(ctx, MethodAdmin, &resp, denom); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Params 实现 TokenQuerier
func (q *TokenQuerier) Params(ctx context.Context) (*types.ParamsResponse, error) {
	var resp types.ParamsResponse
	if err := q.call(ctx, MethodParams, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
