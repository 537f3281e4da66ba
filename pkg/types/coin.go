package types

import (
	"sort"
	"strings"
)

// Coin 单一面额的代币数量
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

// NewCoin 构造 Coin
func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: NewAmount(amount)}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins 代币集合（随请求附带的资金、创建费用等）
type Coins []Coin

// Equal 判断两个集合是否完全相同
//
// 比较与顺序无关，但面额和数量必须一一对应：多一枚、少一枚、
// 面额不同或数量不同都视为不相等。
func (c Coins) Equal(other Coins) bool {
	if len(c) != len(other) {
		return false
	}
	a, b := c.sorted(), other.sorted()
	for i := range a {
		if a[i].Denom != b[i].Denom || !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}

// sorted 返回按 (denom, amount) 排序的副本
func (c Coins) sorted() Coins {
	out := make(Coins, len(c))
	copy(out, c)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Denom != out[j].Denom {
			return out[i].Denom < out[j].Denom
		}
		return out[i].Amount.Cmp(out[j].Amount) < 0
	})
	return out
}

func (c Coins) String() string {
	if len(c) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c))
	for _, coin := range c {
		parts = append(parts, coin.String())
	}
	return strings.Join(parts, ",")
}
