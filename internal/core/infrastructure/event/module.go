// Package event 提供事件管理功能
package event

import (
	"context"

	"go.uber.org/fx"

	logmodule "github.com/weisyn/tokenfactory/internal/core/infrastructure/log"
	eventInterface "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger    log.Logger   `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle // 生命周期管理
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(
			func(input ModuleInput) ModuleOutput {
				bus := New(logmodule.WithModule(input.Logger, "event"))
				// 停止时等待异步订阅者处理完已发布的事件
				input.Lifecycle.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						bus.WaitAsync()
						return nil
					},
				})
				return ModuleOutput{EventBus: bus}
			},
		),
	)
}
