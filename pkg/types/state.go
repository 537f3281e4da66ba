package types

// Configuration 实例级单例配置
//
// 初始化时以调用方为 Owner 创建，之后只能由 Owner 通过 UpdateConfig 修改，从不删除。
// Owner 对面额没有隐含权限，面额权限只看 DenomRecord。
type Configuration struct {
	Owner string `json:"owner"`
	// CreationFee 覆盖宿主参数中的创建费用；nil 表示使用宿主参数
	CreationFee *Coins `json:"creation_fee,omitempty"`
}

// DenomRecord 面额 → 所有者登记
type DenomRecord struct {
	Denom string `json:"denom"`
	Owner string `json:"owner"`
}
