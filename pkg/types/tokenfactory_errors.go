package types

import (
	"errors"
	"fmt"
)

// TokenFactoryErrorKind 代币工厂错误类别
type TokenFactoryErrorKind int32

const (
	TokenFactoryErrorUnknown TokenFactoryErrorKind = iota
	TokenFactoryErrorUnauthorized
	TokenFactoryErrorInvalidSubdenom
	TokenFactoryErrorInvalidDenom
	TokenFactoryErrorZeroAmount
	TokenFactoryErrorInvalidFund
	TokenFactoryErrorUninitialized
	TokenFactoryErrorInvalidAddress
	TokenFactoryErrorDenomAlreadyExists
	TokenFactoryErrorInvalidRequest
)

var kindNames = map[TokenFactoryErrorKind]string{
	TokenFactoryErrorUnknown:            "Unknown",
	TokenFactoryErrorUnauthorized:       "Unauthorized",
	TokenFactoryErrorInvalidSubdenom:    "InvalidSubdenom",
	TokenFactoryErrorInvalidDenom:       "InvalidDenom",
	TokenFactoryErrorZeroAmount:         "ZeroAmount",
	TokenFactoryErrorInvalidFund:        "InvalidFund",
	TokenFactoryErrorUninitialized:      "Uninitialized",
	TokenFactoryErrorInvalidAddress:     "InvalidAddress",
	TokenFactoryErrorDenomAlreadyExists: "DenomAlreadyExists",
	TokenFactoryErrorInvalidRequest:     "InvalidRequest",
}

func (k TokenFactoryErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenFactoryErrorKind(%d)", int32(k))
}

// TokenFactoryError 代币工厂授权层的类型化错误
//
// 每个错误对请求都是终止性的，不做重试。Denom / Subdenom / Reason
// 只在对应类别下有意义；Reason 中的外部错误信息原样保留，仅用于诊断。
type TokenFactoryError struct {
	Kind     TokenFactoryErrorKind
	Denom    string // InvalidDenom / DenomAlreadyExists
	Subdenom string // InvalidSubdenom
	Address  string // InvalidAddress
	Reason   string // InvalidDenom / InvalidAddress / InvalidRequest
}

// Error 实现 error 接口
func (e *TokenFactoryError) Error() string {
	switch e.Kind {
	case TokenFactoryErrorUnauthorized:
		return "Unauthorized"
	case TokenFactoryErrorInvalidSubdenom:
		return fmt.Sprintf("Invalid subdenom: %q", e.Subdenom)
	case TokenFactoryErrorInvalidDenom:
		return fmt.Sprintf("Invalid denom: %q %q", e.Denom, e.Reason)
	case TokenFactoryErrorZeroAmount:
		return "amount was zero, must be positive"
	case TokenFactoryErrorInvalidFund:
		return "Invalid fund"
	case TokenFactoryErrorUninitialized:
		return "contract is not initialized"
	case TokenFactoryErrorInvalidAddress:
		return fmt.Sprintf("Invalid address %q: %s", e.Address, e.Reason)
	case TokenFactoryErrorDenomAlreadyExists:
		return fmt.Sprintf("denom already exists: %s", e.Denom)
	case TokenFactoryErrorInvalidRequest:
		return fmt.Sprintf("invalid request: %s", e.Reason)
	default:
		return fmt.Sprintf("tokenfactory error: %s", e.Reason)
	}
}

// Is 按类别匹配，使 errors.Is(err, ErrUnauthorized) 等判断成立
func (e *TokenFactoryError) Is(target error) bool {
	t, ok := target.(*TokenFactoryError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// 类别哨兵，仅用于 errors.Is 比较
var (
	ErrUnauthorized       = &TokenFactoryError{Kind: TokenFactoryErrorUnauthorized}
	ErrInvalidSubdenom    = &TokenFactoryError{Kind: TokenFactoryErrorInvalidSubdenom}
	ErrInvalidDenom       = &TokenFactoryError{Kind: TokenFactoryErrorInvalidDenom}
	ErrZeroAmount         = &TokenFactoryError{Kind: TokenFactoryErrorZeroAmount}
	ErrInvalidFund        = &TokenFactoryError{Kind: TokenFactoryErrorInvalidFund}
	ErrUninitialized      = &TokenFactoryError{Kind: TokenFactoryErrorUninitialized}
	ErrInvalidAddress     = &TokenFactoryError{Kind: TokenFactoryErrorInvalidAddress}
	ErrDenomAlreadyExists = &TokenFactoryError{Kind: TokenFactoryErrorDenomAlreadyExists}
	ErrInvalidRequest     = &TokenFactoryError{Kind: TokenFactoryErrorInvalidRequest}
)

// NewUnauthorizedError 调用方不是目标面额或配置的记录所有者
func NewUnauthorizedError() *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorUnauthorized}
}

// NewInvalidSubdenomError subdenom 为空
func NewInvalidSubdenomError(subdenom string) *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorInvalidSubdenom, Subdenom: subdenom}
}

// NewInvalidDenomError 面额格式错误或未被权威索引确认
func NewInvalidDenomError(denom, reason string) *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorInvalidDenom, Denom: denom, Reason: reason}
}

// NewZeroAmountError 数量为零
func NewZeroAmountError() *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorZeroAmount}
}

// NewInvalidFundError 附带资金与创建费用不完全一致
func NewInvalidFundError() *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorInvalidFund}
}

// NewUninitializedError 配置尚未创建
func NewUninitializedError() *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorUninitialized}
}

// NewInvalidAddressError 目标地址格式错误
func NewInvalidAddressError(address, reason string) *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorInvalidAddress, Address: address, Reason: reason}
}

// NewDenomAlreadyExistsError 面额已登记
func NewDenomAlreadyExistsError(denom string) *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorDenomAlreadyExists, Denom: denom}
}

// NewInvalidRequestError 请求本身不合法（缺少变体、重复初始化等）
func NewInvalidRequestError(reason string) *TokenFactoryError {
	return &TokenFactoryError{Kind: TokenFactoryErrorInvalidRequest, Reason: reason}
}

// AsTokenFactoryError 提取错误链中的 TokenFactoryError
func AsTokenFactoryError(err error) (*TokenFactoryError, bool) {
	if err == nil {
		return nil, false
	}
	var tfErr *TokenFactoryError
	if errors.As(err, &tfErr) {
		return tfErr, true
	}
	return nil, false
}

// ErrorKindOf 返回错误类别，非 TokenFactoryError 返回 Unknown
func ErrorKindOf(err error) TokenFactoryErrorKind {
	if tfErr, ok := AsTokenFactoryError(err); ok {
		return tfErr.Kind
	}
	return TokenFactoryErrorUnknown
}
