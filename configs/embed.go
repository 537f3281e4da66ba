// Package configs 嵌入默认配置文件
package configs

import _ "embed"

// 默认配置：本地开发使用，生产环境通过 --config 或 TOKENFACTORY_* 环境变量覆盖
//
//go:embed default.json
var defaultConfig []byte

// GetDefaultConfig 获取嵌入的默认配置
func GetDefaultConfig() []byte {
	return defaultConfig
}
