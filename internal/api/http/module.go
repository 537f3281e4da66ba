package http

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/weisyn/tokenfactory/internal/app/version"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// ModuleParams HTTP模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Provider   config.Provider
	ZapLogger  *zap.Logger
	Dispatcher *dispatcher.Dispatcher
	Store      storage.Store
	Collector  *metrics.Collector `optional:"true"`
	EventBus   event.EventBus     `optional:"true"`
}

// Module 返回HTTP模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
		fx.Invoke(func(*Server) {}),
	)
}

// ProvideServer 创建HTTP服务器，启用时注册启停钩子
func ProvideServer(params ModuleParams) (*Server, error) {
	options := params.Provider.GetAPI()
	logger := params.ZapLogger.With(zap.String("module", "http"))

	server, err := NewServer(ServerConfig{
		Options:      options,
		Logger:       logger,
		TokenFactory: params.Dispatcher,
		Store:        params.Store,
		Version:      version.GetVersion(),
		Collector:    params.Collector,
		EventBus:     params.EventBus,
	})
	if err != nil {
		return nil, err
	}

	if !options.HTTPEnabled {
		logger.Info("HTTP API在配置中被禁用")
		return server, nil
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server, nil
}
