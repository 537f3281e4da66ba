package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/tokenfactory/configs"
	"github.com/weisyn/tokenfactory/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath string // 配置文件路径，为空时使用内嵌默认配置
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "tokenfactoryd",
	Short: "代币工厂授权服务",
	Long: `tokenfactoryd - 代币工厂授权层

在宿主代币工厂之上维护面额所有权登记，校验调用方权限，
并把通过校验的请求转换为交给宿主执行的意图。

配置来源（优先级从高到低）:
  TOKENFACTORY_* 环境变量
  --config 指定的文件 / TOKENFACTORY_CONFIG_PATH
  内嵌默认配置`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "配置文件路径 (默认使用内嵌配置)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(versionCmd)
}

// appOptions 由全局标志构造应用选项
func appOptions() []app.Option {
	return []app.Option{
		app.WithConfigFile(globalFlags.ConfigPath),
		app.WithEmbeddedConfig(configs.GetDefaultConfig()),
	}
}
