// Package tokenfactory 组装代币工厂授权层
//
// 依赖存储、日志、事件与指标模块，对外提供 *dispatcher.Dispatcher。
package tokenfactory

import (
	"go.uber.org/fx"

	"github.com/weisyn/tokenfactory/internal/core/infrastructure/clock"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/crypto/address"
	logmodule "github.com/weisyn/tokenfactory/internal/core/infrastructure/log"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/guard"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/querier"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/state"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	metricsInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ModuleInput 代币工厂模块依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider
	Store    storage.Store
	Logger   log.Logger                `optional:"true"`
	EventBus event.EventBus            `optional:"true"`
	Recorder metricsInterface.Recorder `optional:"true"`
}

// ModuleOutput 代币工厂模块输出
type ModuleOutput struct {
	fx.Out

	Dispatcher *dispatcher.Dispatcher
	Querier    tfinterfaces.TokenQuerier
}

// Module 返回代币工厂模块
func Module() fx.Option {
	return fx.Module("tokenfactory",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 按配置组装状态存储、权威索引客户端、授权检查与分发器
func ProvideServices(input ModuleInput) ModuleOutput {
	opts := input.Provider.GetTokenFactory()
	logger := logmodule.WithModule(input.Logger, "tokenfactory")

	configs := state.NewConfigStore()
	registry := state.NewDenomRegistry()
	addresses := address.NewAddressService(opts.AddressVersion)

	client := querier.NewClient(opts.QuerierEndpoint, opts.QuerierTimeout, logmodule.WithModule(input.Logger, "querier"))
	index := querier.NewTokenQuerier(client, input.Recorder)

	g := guard.New(guard.Config{
		Configs:     configs,
		Registry:    registry,
		Querier:     index,
		Addresses:   addresses,
		DenomPrefix: opts.DenomPrefix,
		Logger:      logger,
	})

	d := dispatcher.New(dispatcher.Config{
		Store:    input.Store,
		Configs:  configs,
		Registry: registry,
		Querier:  index,
		Guard:    g,
		Env:      types.Env{ContractAddress: opts.ContractAddress},
		EventBus: input.EventBus,
		Recorder: input.Recorder,
		Clock:    clock.NewSystemClock(),
		Logger:   logger,
	})

	if logger != nil {
		logger.Infof("代币工厂已就绪: contract=%s prefix=%s querier=%s",
			opts.ContractAddress, g.DenomPrefix(), opts.QuerierEndpoint)
	}

	return ModuleOutput{Dispatcher: d, Querier: index}
}
