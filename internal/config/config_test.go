package config

import (
	"errors"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/tokenfactory/pkg/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

// testContract 合法的 WES P2PKH 地址
const testContract = "Cf1Kes6snEUeykiJJgrAtKPNPrAzPdPmSn"

func validAppConfig() *types.AppConfig {
	return &types.AppConfig{
		TokenFactory: &types.UserTokenFactoryConfig{
			ContractAddress: strPtr(testContract),
		},
	}
}

type appOptions struct{ cfg *types.AppConfig }

func (o appOptions) GetAppConfig() *types.AppConfig { return o.cfg }

// TestNewProviderDefaults 未配置的字段取各子包默认值
func TestNewProviderDefaults(t *testing.T) {
	provider := NewProvider(nil)

	tf := provider.GetTokenFactory()
	assert.Equal(t, "factory", tf.DenomPrefix)
	assert.Equal(t, byte(0x1C), tf.AddressVersion)
	assert.Equal(t, 10*time.Second, tf.QuerierTimeout)
	assert.Empty(t, tf.ContractAddress)

	assert.Equal(t, "badger", provider.GetStorage().Backend)
	assert.True(t, provider.GetAPI().HTTPEnabled)
	assert.Equal(t, 8080, provider.GetAPI().HTTPPort)
	assert.NotNil(t, provider.GetAppConfig())
}

func TestNewProviderUserValues(t *testing.T) {
	cfg := validAppConfig()
	cfg.TokenFactory.DenomPrefix = strPtr("tf")
	cfg.TokenFactory.Querier = &types.UserQuerierConfig{
		Endpoint:  strPtr("http://index:9000/rpc"),
		TimeoutMs: intPtr(250),
	}
	cfg.Storage = &types.UserStorageConfig{Backend: strPtr(" Redis ")}

	provider := NewProvider(cfg)
	tf := provider.GetTokenFactory()
	assert.Equal(t, testContract, tf.ContractAddress)
	assert.Equal(t, "tf", tf.DenomPrefix)
	assert.Equal(t, "http://index:9000/rpc", tf.QuerierEndpoint)
	assert.Equal(t, 250*time.Millisecond, tf.QuerierTimeout)
	assert.Equal(t, "redis", provider.GetStorage().Backend)
}

func TestValidate(t *testing.T) {
	t.Run("合法配置", func(t *testing.T) {
		require.NoError(t, Validate(NewProvider(validAppConfig())))
	})

	t.Run("缺少实例地址", func(t *testing.T) {
		err := Validate(NewProvider(&types.AppConfig{}))
		require.Error(t, err)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "tokenfactory.contract_address", vErr.Field)
	})

	t.Run("实例地址格式错误", func(t *testing.T) {
		for _, addr := range []string{"CcontractAddr", "C/bad", "invalid_address_format", testContract[:len(testContract)-1] + "1"} {
			cfg := validAppConfig()
			cfg.TokenFactory.ContractAddress = strPtr(addr)
			err := Validate(NewProvider(cfg))
			require.Error(t, err, addr)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "tokenfactory.contract_address", vErr.Field)
			assert.Contains(t, vErr.Message, "格式错误")
		}
	})

	t.Run("实例地址版本字节不符", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.TokenFactory.AddressVersion = intPtr(0x9C)
		assert.Error(t, Validate(NewProvider(cfg)), "P2PKH 地址与配置的版本不符")
	})

	t.Run("返回全部错误", func(t *testing.T) {
		cfg := &types.AppConfig{
			TokenFactory: &types.UserTokenFactoryConfig{
				DenomPrefix: strPtr("a/b"),
				Querier:     &types.UserQuerierConfig{Endpoint: strPtr("not a url"), TimeoutMs: intPtr(0)},
			},
			Storage: &types.UserStorageConfig{Backend: strPtr("leveldb")},
			API:     &types.UserAPIConfig{HTTPPort: intPtr(70000)},
		}
		err := Validate(NewProvider(cfg))
		require.Error(t, err)
		for _, field := range []string{
			"tokenfactory.contract_address",
			"tokenfactory.denom_prefix",
			"tokenfactory.querier.endpoint",
			"tokenfactory.querier.timeout_ms",
			"storage.backend",
			"api.http_port",
		} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("HTTP禁用时不检查端口", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.API = &types.UserAPIConfig{HTTPEnabled: boolPtr(false), HTTPPort: intPtr(0)}
		assert.NoError(t, Validate(NewProvider(cfg)))
	})
}

func TestProvideProvider(t *testing.T) {
	provider, err := ProvideProvider(appOptions{cfg: validAppConfig()})
	require.NoError(t, err)
	assert.Equal(t, testContract, provider.GetTokenFactory().ContractAddress)

	_, err = ProvideProvider(appOptions{cfg: &types.AppConfig{}})
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Run("覆盖已有值并创建缺失的段", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.Log = &types.UserLogConfig{Level: strPtr("info")}

		err := applyEnvOverrides(cfg, env.Options{
			Prefix: envPrefix,
			Environment: map[string]string{
				"TOKENFACTORY_LOG_LEVEL":          "debug",
				"TOKENFACTORY_HTTP_PORT":          "9090",
				"TOKENFACTORY_STORAGE_BACKEND":    "redis",
				"TOKENFACTORY_REDIS_ADDR":         "redis:6379",
				"TOKENFACTORY_REDIS_DB":           "2",
				"TOKENFACTORY_CONTRACT_ADDRESS":   "Cother",
				"TOKENFACTORY_QUERIER_TIMEOUT_MS": "500",
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "debug", *cfg.Log.Level)
		assert.Equal(t, 9090, *cfg.API.HTTPPort)
		assert.Nil(t, cfg.API.HTTPHost)
		assert.Equal(t, "redis", *cfg.Storage.Backend)
		assert.Equal(t, "redis:6379", *cfg.Storage.Redis.Addr)
		assert.Equal(t, 2, *cfg.Storage.Redis.DB)
		assert.Equal(t, "Cother", *cfg.TokenFactory.ContractAddress)
		assert.Equal(t, 500, *cfg.TokenFactory.Querier.TimeoutMs)
		assert.Nil(t, cfg.TokenFactory.Querier.Endpoint)
	})

	t.Run("未设置变量时保持原配置", func(t *testing.T) {
		cfg := validAppConfig()
		err := applyEnvOverrides(cfg, env.Options{Prefix: envPrefix, Environment: map[string]string{}})
		require.NoError(t, err)
		assert.Nil(t, cfg.Log)
		assert.Nil(t, cfg.API)
		assert.Nil(t, cfg.Storage)
		assert.Equal(t, testContract, *cfg.TokenFactory.ContractAddress)
	})

	t.Run("类型错误", func(t *testing.T) {
		err := applyEnvOverrides(validAppConfig(), env.Options{
			Prefix:      envPrefix,
			Environment: map[string]string{"TOKENFACTORY_HTTP_PORT": "eighty"},
		})
		assert.Error(t, err)
	})
}
