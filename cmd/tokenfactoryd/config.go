package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/tokenfactory/internal/app"
	cfgpkg "github.com/weisyn/tokenfactory/internal/config"
	"github.com/weisyn/tokenfactory/internal/config/storage"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
)

// configCmd 配置相关命令
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看和验证配置",
}

// configShowCmd 显示合并默认值与覆盖后的生效配置
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示生效配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := loadProvider()
		if err != nil {
			return err
		}
		pterm.DefaultSection.Println("生效配置")
		return pterm.DefaultTable.WithHasHeader(true).WithData(configRows(provider)).Render()
	},
}

// configValidateCmd 验证配置
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "验证配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := loadProvider()
		if err != nil {
			return err
		}
		if err := cfgpkg.Validate(provider); err != nil {
			pterm.Error.Println("配置无效")
			return err
		}
		pterm.Success.Println("配置有效")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func loadProvider() (config.Provider, error) {
	appConfig, err := app.LoadAppConfig(appOptions()...)
	if err != nil {
		return nil, err
	}
	return cfgpkg.NewProvider(appConfig), nil
}

// configRows 生效配置表格，不输出密码
func configRows(provider config.Provider) [][]string {
	tf := provider.GetTokenFactory()
	apiOpts := provider.GetAPI()
	logOpts := provider.GetLog()
	backend := provider.GetStorage().Backend

	rows := [][]string{
		{"配置项", "值"},
		{"tokenfactory.contract_address", tf.ContractAddress},
		{"tokenfactory.denom_prefix", tf.DenomPrefix},
		{"tokenfactory.address_version", fmt.Sprintf("0x%02X", tf.AddressVersion)},
		{"tokenfactory.querier.endpoint", tf.QuerierEndpoint},
		{"tokenfactory.querier.timeout", tf.QuerierTimeout.String()},
		{"api.http_enabled", strconv.FormatBool(apiOpts.HTTPEnabled)},
		{"api.http_addr", fmt.Sprintf("%s:%d", apiOpts.HTTPHost, apiOpts.HTTPPort)},
		{"api.websocket", strconv.FormatBool(apiOpts.EnableWebSocket)},
		{"api.metrics", strconv.FormatBool(apiOpts.EnableMetrics)},
		{"api.rate_limit", fmt.Sprintf("read=%d write=%d", apiOpts.ReadRateLimit, apiOpts.WriteRateLimit)},
		{"log.level", logOpts.Level},
		{"storage.backend", backend},
	}

	switch backend {
	case storage.BackendRedis:
		redisOpts := provider.GetRedis()
		rows = append(rows,
			[]string{"storage.redis.addr", redisOpts.Addr},
			[]string{"storage.redis.db", strconv.Itoa(redisOpts.DB)},
			[]string{"storage.redis.key_prefix", redisOpts.KeyPrefix},
		)
	default:
		badgerOpts := provider.GetBadger()
		rows = append(rows,
			[]string{"storage.badger.path", badgerOpts.Path},
			[]string{"storage.badger.in_memory", strconv.FormatBool(badgerOpts.InMemory)},
		)
	}
	if logOpts.ToFile {
		rows = append(rows, []string{"log.file_path", logOpts.FilePath})
	}
	return rows
}
