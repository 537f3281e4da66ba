package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// maxAmount 宿主代币模块使用 Uint128 表示数量
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Amount 无符号 128 位代币数量
//
// 零值表示 0。JSON 编码为十进制字符串，与宿主 Uint128 的线上格式一致。
type Amount struct {
	v *big.Int
}

// NewAmount 从 uint64 构造数量
func NewAmount(n uint64) Amount {
	return Amount{v: new(big.Int).SetUint64(n)}
}

// ParseAmount 解析十进制数量字符串
//
// 负数、非十进制字符和超过 Uint128 上限的值都会被拒绝。
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("amount 不能为空")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("amount 不是合法的十进制整数: %q", s)
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount 不能为负数: %s", s)
	}
	if v.Cmp(maxAmount) > 0 {
		return Amount{}, fmt.Errorf("amount 超出 Uint128 范围: %s", s)
	}
	return Amount{v: v}, nil
}

// MustParseAmount 解析数量，失败时 panic（仅用于常量和测试）
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero 是否为零
func (a Amount) IsZero() bool {
	return a.v == nil || a.v.Sign() == 0
}

// Cmp 比较两个数量，返回 -1 / 0 / 1
func (a Amount) Cmp(b Amount) int {
	return a.bigInt().Cmp(b.bigInt())
}

// Equal 数值相等
func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// BigInt 返回底层数值的副本
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.bigInt())
}

func (a Amount) String() string {
	return a.bigInt().String()
}

func (a Amount) bigInt() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// MarshalJSON 编码为十进制字符串
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON 解码十进制字符串
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount 必须是十进制字符串: %w", err)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
