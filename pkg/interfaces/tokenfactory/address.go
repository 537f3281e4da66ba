package tokenfactory

// AddressValidator 目标地址格式校验
//
// 返回的 error 信息会原样嵌入 InvalidAddress 错误。
type AddressValidator interface {
	ValidateAddress(address string) error
}
