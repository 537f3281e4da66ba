// Package tokenfactory 提供代币工厂授权层配置
package tokenfactory

import (
	"time"

	configtypes "github.com/weisyn/tokenfactory/pkg/types"
)

// TokenFactoryOptions 代币工厂配置选项
type TokenFactoryOptions struct {
	// ContractAddress 本实例地址，所创建面额的 issuer 段；必须配置
	ContractAddress string `json:"contract_address"`
	DenomPrefix     string `json:"denom_prefix"`
	AddressVersion  byte   `json:"address_version"`

	QuerierEndpoint string        `json:"querier_endpoint"`
	QuerierTimeout  time.Duration `json:"querier_timeout"`
}

// Config 代币工厂配置实现
type Config struct {
	options *TokenFactoryOptions
}

// New 创建代币工厂配置，userConfig 为 *types.UserTokenFactoryConfig 或 nil
func New(userConfig interface{}) *Config {
	options := &TokenFactoryOptions{
		DenomPrefix:     defaultDenomPrefix,
		AddressVersion:  defaultAddressVersion,
		QuerierEndpoint: defaultQuerierEndpoint,
		QuerierTimeout:  defaultQuerierTimeout,
	}

	if tf, ok := userConfig.(*configtypes.UserTokenFactoryConfig); ok && tf != nil {
		if tf.ContractAddress != nil {
			options.ContractAddress = *tf.ContractAddress
		}
		if tf.DenomPrefix != nil {
			options.DenomPrefix = *tf.DenomPrefix
		}
		if tf.AddressVersion != nil {
			options.AddressVersion = byte(*tf.AddressVersion)
		}
		if tf.Querier != nil {
			if tf.Querier.Endpoint != nil {
				options.QuerierEndpoint = *tf.Querier.Endpoint
			}
			if tf.Querier.TimeoutMs != nil {
				options.QuerierTimeout = time.Duration(*tf.Querier.TimeoutMs) * time.Millisecond
			}
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整的代币工厂配置选项
func (c *Config) GetOptions() *TokenFactoryOptions {
	return c.options
}

// DefaultDenomPrefix 默认面额前缀
func DefaultDenomPrefix() string {
	return defaultDenomPrefix
}
