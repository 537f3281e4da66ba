// Package metrics 提供统一的指标收集机制
package metrics

import (
	metricsInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/metrics"
	"go.uber.org/fx"
)

// ModuleOutput 指标模块输出
type ModuleOutput struct {
	fx.Out

	Collector *Collector
	Recorder  metricsInterface.Recorder
}

// Module 返回 metrics 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(func() ModuleOutput {
			c := NewCollector()
			return ModuleOutput{Collector: c, Recorder: c}
		}),
	)
}
