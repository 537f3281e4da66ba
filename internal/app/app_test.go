package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/tokenfactory/pkg/types"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

const testContract = "Cf1Kes6snEUeykiJJgrAtKPNPrAzPdPmSn"

func testAppConfig() *types.AppConfig {
	return &types.AppConfig{
		Log:     &types.UserLogConfig{Level: strPtr("error")},
		API:     &types.UserAPIConfig{HTTPEnabled: boolPtr(false)},
		Storage: &types.UserStorageConfig{InMemory: boolPtr(true)},
		TokenFactory: &types.UserTokenFactoryConfig{
			ContractAddress: strPtr(testContract),
			Querier:         &types.UserQuerierConfig{Endpoint: strPtr("http://127.0.0.1:1/jsonrpc")},
		},
	}
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("嵌入配置", func(t *testing.T) {
		cfg, err := LoadAppConfig(
			WithEmbeddedConfig([]byte(`{"tokenfactory":{"contract_address":"Cembedded"}}`)),
			WithoutEnvOverrides(),
		)
		require.NoError(t, err)
		assert.Equal(t, "Cembedded", *cfg.TokenFactory.ContractAddress)
	})

	t.Run("配置文件优先于嵌入配置", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"tokenfactory":{"contract_address":"Cfile"}}`), 0o600))

		cfg, err := LoadAppConfig(
			WithConfigFile(path),
			WithEmbeddedConfig([]byte(`{"tokenfactory":{"contract_address":"Cembedded"}}`)),
			WithoutEnvOverrides(),
		)
		require.NoError(t, err)
		assert.Equal(t, "Cfile", *cfg.TokenFactory.ContractAddress)
	})

	t.Run("环境变量指定路径", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"app_name":"from-env"}`), 0o600))
		t.Setenv(ConfigPathEnv, path)

		cfg, err := LoadAppConfig(WithoutEnvOverrides())
		require.NoError(t, err)
		assert.Equal(t, "from-env", *cfg.AppName)
	})

	t.Run("环境变量覆盖字段", func(t *testing.T) {
		t.Setenv("TOKENFACTORY_CONTRACT_ADDRESS", "Cenv")
		cfg, err := LoadAppConfig(WithEmbeddedConfig([]byte(`{"tokenfactory":{"contract_address":"Cembedded"}}`)))
		require.NoError(t, err)
		assert.Equal(t, "Cenv", *cfg.TokenFactory.ContractAddress)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadAppConfig(WithConfigFile(filepath.Join(t.TempDir(), "missing.json")))
		assert.Error(t, err)
	})

	t.Run("JSON格式错误", func(t *testing.T) {
		_, err := LoadAppConfig(WithEmbeddedConfig([]byte(`{"tokenfactory":`)), WithoutEnvOverrides())
		assert.Error(t, err)
	})

	t.Run("无任何来源时为空配置", func(t *testing.T) {
		cfg, err := LoadAppConfig(WithoutEnvOverrides())
		require.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Nil(t, cfg.TokenFactory)
	})
}

func TestBootstrapStartStop(t *testing.T) {
	a, err := BootstrapApp(WithAppConfig(testAppConfig()), WithoutEnvOverrides())
	require.NoError(t, err)

	internal, ok := a.(*internalApp)
	require.True(t, ok)
	d := internal.bootstrap.Dispatcher()
	require.NotNil(t, d)
	assert.Equal(t, testContract, d.Env().ContractAddress)
	assert.Empty(t, a.HTTPAddr())

	ctx := context.Background()
	_, err = d.Instantiate(ctx, types.MessageInfo{Sender: "Cowner"}, types.InstantiateMsg{})
	require.NoError(t, err)

	res, err := d.Query(ctx, types.QueryMsg{Config: &types.ConfigQuery{}})
	require.NoError(t, err)
	cfg, ok := res.(*types.ConfigResponse)
	require.True(t, ok)
	assert.Equal(t, "Cowner", cfg.Owner)

	require.NoError(t, a.Stop())
}

func TestBootstrapInvalidConfig(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenFactory.ContractAddress = nil

	_, err := BootstrapApp(WithAppConfig(cfg), WithoutEnvOverrides())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenfactory.contract_address")
}

func TestBootstrapMalformedContractAddress(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenFactory.ContractAddress = strPtr("C/contract")

	_, err := BootstrapApp(WithAppConfig(cfg), WithoutEnvOverrides())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "实例地址格式错误")
}

func TestBootstrapWithoutAPI(t *testing.T) {
	a, err := BootstrapApp(WithAppConfig(testAppConfig()), WithoutEnvOverrides(), WithoutAPI())
	require.NoError(t, err)
	assert.Empty(t, a.HTTPAddr())
	require.NoError(t, a.Stop())
}
