// Package state 实现代币工厂本地状态：单例配置与面额所有者登记
//
// 值以 JSON 编码存放在键值存储中：
//
//	config                     → Configuration
//	denom_owner/<denom>        → 所有者地址（JSON 字符串）
package state

const (
	// ConfigKey 单例配置键
	ConfigKey = "config"
	// DenomOwnerPrefix 面额所有者登记前缀
	DenomOwnerPrefix = "denom_owner/"
)

func denomOwnerKey(denom string) []byte {
	return []byte(DenomOwnerPrefix + denom)
}
