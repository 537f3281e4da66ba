package tokenfactory

import "time"

// 代币工厂默认配置值
const (
	// defaultDenomPrefix 宿主代币工厂的面额前缀字面量
	defaultDenomPrefix = "factory"

	// defaultAddressVersion WES 地址版本字节
	defaultAddressVersion = 0x1C

	defaultQuerierEndpoint = "http://127.0.0.1:28680/jsonrpc"
	defaultQuerierTimeout  = 10 * time.Second
)
