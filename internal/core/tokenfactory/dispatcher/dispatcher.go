// Package dispatcher 实现代币工厂的请求分发
//
// 每个变更请求在一个存储事务中完成：先做全部检查，再写本地状态，
// 最后构造交给宿主执行的意图。任一检查失败都会丢弃本次请求的全部写入，
// 且不产生任何意图。意图只作为数据返回，本层从不执行。
package dispatcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/guard"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	metricsInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// Config 分发器依赖
type Config struct {
	Store    storage.Store
	Configs  tfinterfaces.ConfigStore
	Registry tfinterfaces.DenomRegistry
	Querier  tfinterfaces.TokenQuerier
	Guard    *guard.Guard
	// Env 本实例的执行环境，ContractAddress 为所创建面额的 issuer 段
	Env types.Env

	// 以下可选
	EventBus event.EventBus
	Recorder metricsInterface.Recorder
	Clock    clock.Clock
	Logger   log.Logger
}

// Dispatcher 请求分发器
type Dispatcher struct {
	store    storage.Store
	configs  tfinterfaces.ConfigStore
	registry tfinterfaces.DenomRegistry
	querier  tfinterfaces.TokenQuerier
	guard    *guard.Guard
	env      types.Env

	eventBus event.EventBus
	recorder metricsInterface.Recorder
	clock    clock.Clock
	logger   log.Logger

	// 变更请求逐个执行
	mu sync.Mutex
}

// New 创建分发器
func New(cfg Config) *Dispatcher {
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metricsInterface.NopRecorder{}
	}
	return &Dispatcher{
		store:    cfg.Store,
		configs:  cfg.Configs,
		registry: cfg.Registry,
		querier:  cfg.Querier,
		guard:    cfg.Guard,
		env:      cfg.Env,
		eventBus: cfg.EventBus,
		recorder: recorder,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
}

// Env 返回执行环境
func (d *Dispatcher) Env() types.Env {
	return d.env
}

// handlerFunc 在事务内执行一个变更请求
type handlerFunc func(ctx context.Context, tx storage.Transaction) (*types.Response, error)

// run 在单个事务中执行 handler，并在提交后记录结果
//
// handler 返回的错误不做包装，调用方可以直接用 errors.Is / errors.As 判断类别。
func (d *Dispatcher) run(ctx context.Context, method string, info types.MessageInfo, handler handlerFunc) (*types.Response, error) {
	requestID := uuid.NewString()

	d.mu.Lock()
	defer d.mu.Unlock()

	var resp *types.Response
	err := d.store.RunInTransaction(ctx, func(tx storage.Transaction) error {
		r, err := handler(ctx, tx)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		d.rejected(requestID, method, info, err)
		return nil, err
	}

	d.accepted(requestID, method, info, resp)
	return resp, nil
}

func (d *Dispatcher) accepted(requestID, method string, info types.MessageInfo, resp *types.Response) {
	d.recorder.ObserveRequest(method, metricsInterface.OutcomeAccepted)
	if d.logger != nil {
		d.logger.Infof("请求已接受: request_id=%s method=%s sender=%s intents=%d",
			requestID, method, info.Sender, len(resp.Messages))
	}
	if d.eventBus != nil {
		d.eventBus.Publish(event.EventTypeTokenFactoryExecuted, &types.ExecutedEvent{
			RequestID:  requestID,
			Method:     method,
			Sender:     info.Sender,
			Messages:   resp.Messages,
			Attributes: resp.Attributes,
			Timestamp:  d.now(),
		})
	}
}

func (d *Dispatcher) rejected(requestID, method string, info types.MessageInfo, err error) {
	kind := types.ErrorKindOf(err)
	d.recorder.ObserveRequest(method, kind.String())
	if d.logger != nil {
		d.logger.Warnf("请求被拒绝: request_id=%s method=%s sender=%s kind=%s err=%v",
			requestID, method, info.Sender, kind, err)
	}
	if d.eventBus != nil {
		d.eventBus.Publish(event.EventTypeTokenFactoryRejected, &types.RejectedEvent{
			RequestID: requestID,
			Method:    method,
			Sender:    info.Sender,
			Kind:      kind.String(),
			Error:     err.Error(),
			Timestamp: d.now(),
		})
	}
}

func (d *Dispatcher) now() time.Time {
	if d.clock != nil {
		return d.clock.Now()
	}
	return time.Now().UTC()
}
