package types

// DenomUnit 面额单位
//
// 例如 1 atom = 10^6 uatom，则 uatom 的 Exponent 为 0，atom 的 Exponent 为 6。
type DenomUnit struct {
	Denom    string   `json:"denom"`
	Exponent uint32   `json:"exponent"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Metadata 面额元数据，创建面额时原样透传给宿主
type Metadata struct {
	Description string      `json:"description,omitempty"`
	DenomUnits  []DenomUnit `json:"denom_units,omitempty"`
	Base        string      `json:"base,omitempty"`
	Display     string      `json:"display,omitempty"`
	Name        string      `json:"name,omitempty"`
	Symbol      string      `json:"symbol,omitempty"`
}

// Params 宿主代币工厂参数
type Params struct {
	DenomCreationFee Coins `json:"denom_creation_fee"`
}
