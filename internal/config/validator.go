package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/weisyn/tokenfactory/internal/config/storage"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/tokenfactory/pkg/interfaces/config"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// Validate 启动前验证配置一致性，返回全部验证错误（errors.Join）
func Validate(provider config.Provider) error {
	var errs []error

	tf := provider.GetTokenFactory()
	if strings.TrimSpace(tf.ContractAddress) == "" {
		errs = append(errs, &ValidationError{
			Field:   "tokenfactory.contract_address",
			Message: "实例地址不能为空，它是所创建面额的 issuer 段",
		})
	} else if _, err := address.NewAddressService(tf.AddressVersion).AddressToBytes(tf.ContractAddress); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "tokenfactory.contract_address",
			Message: fmt.Sprintf("实例地址格式错误 %q: %v", tf.ContractAddress, err),
		})
	}
	if tf.DenomPrefix == "" || strings.Contains(tf.DenomPrefix, "/") {
		errs = append(errs, &ValidationError{
			Field:   "tokenfactory.denom_prefix",
			Message: fmt.Sprintf("面额前缀不能为空且不能包含 '/': %q", tf.DenomPrefix),
		})
	}
	if u, err := url.Parse(tf.QuerierEndpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "tokenfactory.querier.endpoint",
			Message: fmt.Sprintf("权威索引端点不是合法的 URL: %q", tf.QuerierEndpoint),
		})
	}
	if tf.QuerierTimeout <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "tokenfactory.querier.timeout_ms",
			Message: "查询超时必须大于 0",
		})
	}

	backend := provider.GetStorage().Backend
	if !storage.IsSupportedBackend(backend) {
		errs = append(errs, &ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("未知的存储后端 %q（支持 badger | redis）", backend),
		})
	}

	apiOpts := provider.GetAPI()
	if apiOpts.HTTPEnabled && (apiOpts.HTTPPort <= 0 || apiOpts.HTTPPort > 65535) {
		errs = append(errs, &ValidationError{
			Field:   "api.http_port",
			Message: fmt.Sprintf("端口超出范围: %d", apiOpts.HTTPPort),
		})
	}

	return errors.Join(errs...)
}
