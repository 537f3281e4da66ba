package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/weisyn/tokenfactory/internal/api"
	apihttp "github.com/weisyn/tokenfactory/internal/api/http"
	cfgpkg "github.com/weisyn/tokenfactory/internal/config"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/event"
	logmodule "github.com/weisyn/tokenfactory/internal/core/infrastructure/log"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/storage"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
)

// startTimeout 启动超时，覆盖存储打开与端口监听
const startTimeout = 30 * time.Second

// Bootstrap 应用引导器
//
// 按层次组装fx模块：基础设施层 → 业务层 → 应用层。
type Bootstrap struct {
	opts  *options
	fxApp *fx.App

	// 启动后由fx填充
	log        log.Logger
	dispatcher *dispatcher.Dispatcher
	httpServer *apihttp.Server
}

// NewBootstrap 创建引导器
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		cfgpkg.Module(),    // 配置提供者（启动前验证）
		logmodule.Module(), // zap + lumberjack
		event.Module(),     // 事件总线
		metrics.Module(),   // prometheus 指标
		storage.Module(),   // badger | redis
	}
}

// SetupBusinessLayer 设置业务层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		tokenfactory.Module(),
		fx.Populate(&b.dispatcher),
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	modules := []fx.Option{
		AppModule(b.opts),
		fx.Populate(&b.log),
	}

	if b.opts.enableAPI {
		modules = append(modules, api.Module(), fx.Populate(&b.httpServer))
	}

	return modules
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	allModules = append(allModules, b.opts.extra...)
	return allModules
}

// CreateFxApp 加载配置并创建fx应用
func (b *Bootstrap) CreateFxApp() error {
	if err := b.opts.loadAppConfig(); err != nil {
		return err
	}

	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("组装模块失败: %w", err)
	}
	return nil
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	b.logger().Info("代币工厂服务已启动")
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	b.logger().Info("正在停止代币工厂服务...")
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// Dispatcher 启动后可用的请求分发器
func (b *Bootstrap) Dispatcher() *dispatcher.Dispatcher {
	return b.dispatcher
}

func (b *Bootstrap) logger() log.Logger {
	if b.log != nil {
		return b.log
	}
	return logmodule.GetLogger()
}

// BootstrapApp 执行完整的引导过程并返回应用实例
func BootstrapApp(options ...Option) (App, error) {
	bootstrap := NewBootstrap(newOptions(options...))

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), startTimeout)
	defer startupCancel()

	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
