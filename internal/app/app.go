package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	cfgpkg "github.com/weisyn/tokenfactory/internal/config"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ConfigPathEnv 配置文件路径环境变量，优先级低于显式传入的路径
const ConfigPathEnv = "TOKENFACTORY_CONFIG_PATH"

// stopTimeout 停止应用的超时，需覆盖存储同步与HTTP优雅关闭
const stopTimeout = 60 * time.Second

// AppModule 应用模块定义
func AppModule(opts *options) fx.Option {
	// 提供应用配置选项，供config模块使用
	return fx.Provide(func() config.AppOptions { return opts })
}

// LoadAppConfig 按来源优先级加载用户配置
//
// 顺序：显式配置文件 > TOKENFACTORY_CONFIG_PATH > 嵌入配置 > 空配置。
// 加载后应用环境变量覆盖。
func LoadAppConfig(opts ...Option) (*types.AppConfig, error) {
	o := newOptions(opts...)
	if err := o.loadAppConfig(); err != nil {
		return nil, err
	}
	return o.appConfig, nil
}

func (o *options) loadAppConfig() error {
	if o.appConfig == nil {
		data, err := o.readConfigBytes()
		if err != nil {
			return err
		}
		appConfig := &types.AppConfig{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, appConfig); err != nil {
				return fmt.Errorf("解析配置文件失败: %w", err)
			}
		}
		o.appConfig = appConfig
	}

	if !o.skipEnv {
		if err := cfgpkg.ApplyEnvOverrides(o.appConfig); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) readConfigBytes() ([]byte, error) {
	path := o.configFilePath
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
		return data, nil
	}
	return o.embeddedConfig, nil
}

// App 是代币工厂服务的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 等待退出信号后停止应用
	Wait() error

	// HTTPAddr HTTP服务实际监听地址，未启用时为空
	HTTPAddr() string
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() error {
	sig := WaitForSignal()
	a.bootstrap.logger().Infof("收到信号 %v，正在优雅退出", sig)
	return a.Stop()
}

// HTTPAddr 返回HTTP服务监听地址
func (a *internalApp) HTTPAddr() string {
	if a.bootstrap.httpServer == nil {
		return ""
	}
	return a.bootstrap.httpServer.Addr()
}

// Start 加载配置并启动应用
func Start(appOptions ...Option) (App, error) {
	return BootstrapApp(appOptions...)
}

// WaitForSignal 等待退出信号
func WaitForSignal() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	return <-signals
}
