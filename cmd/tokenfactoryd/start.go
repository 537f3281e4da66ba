package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/tokenfactory/internal/app"
	"github.com/weisyn/tokenfactory/internal/app/version"
)

var withoutAPI bool

// startCmd 启动服务
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "启动代币工厂服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := appOptions()
		if withoutAPI {
			opts = append(opts, app.WithoutAPI())
		}

		spinner, _ := pterm.DefaultSpinner.Start("正在启动 tokenfactoryd...")
		application, err := app.Start(opts...)
		if err != nil {
			spinner.Fail("启动失败")
			return err
		}
		spinner.Success("tokenfactoryd 已启动")

		content := fmt.Sprintf("版本: %s", version.GetVersion())
		if addr := application.HTTPAddr(); addr != "" {
			content += fmt.Sprintf("\nHTTP: http://%s/v1/tokenfactory", addr)
		}
		pterm.DefaultBox.WithTitle("tokenfactoryd").WithTitleTopCenter().Println(content)
		pterm.Info.Println("按 Ctrl+C 停止")

		if err := application.Wait(); err != nil {
			pterm.Error.Printfln("停止时出错: %v", err)
			return err
		}
		pterm.Success.Println("已安全退出")
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&withoutAPI, "without-api", false, "不启动HTTP API")
}
