package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const u128Max = "340282366920938463463374607431768211455"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"零", "0", "0", false},
		{"普通值", "1000", "1000", false},
		{"去除空白", " 42 ", "42", false},
		{"Uint128上限", u128Max, u128Max, false},
		{"超出上限", "340282366920938463463374607431768211456", "", true},
		{"负数", "-1", "", true},
		{"小数", "1.5", "", true},
		{"空串", "", "", true},
		{"十六进制", "0x10", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestAmountZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, "0", a.String())
	assert.True(t, a.Equal(NewAmount(0)))
	assert.Equal(t, -1, a.Cmp(NewAmount(1)))
}

func TestAmountBigIntIsCopy(t *testing.T) {
	a := NewAmount(7)
	b := a.BigInt()
	b.SetInt64(100)
	assert.Equal(t, "7", a.String())
}

func TestAmountJSON(t *testing.T) {
	data, err := json.Marshal(MustParseAmount(u128Max))
	require.NoError(t, err)
	assert.Equal(t, `"`+u128Max+`"`, string(data))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"123"`), &a))
	assert.Equal(t, "123", a.String())

	// 数字字面量会丢失精度，只接受字符串
	assert.Error(t, json.Unmarshal([]byte(`123`), &a))
	assert.Error(t, json.Unmarshal([]byte(`"-5"`), &a))
}

func TestCoinsEqual(t *testing.T) {
	fee := Coins{NewCoin("uwes", 100), NewCoin("uatom", 5)}

	assert.True(t, fee.Equal(Coins{NewCoin("uatom", 5), NewCoin("uwes", 100)}))
	assert.False(t, fee.Equal(Coins{NewCoin("uwes", 100)}))
	assert.False(t, fee.Equal(Coins{NewCoin("uwes", 100), NewCoin("uatom", 6)}))
	assert.False(t, fee.Equal(Coins{NewCoin("uwes", 100), NewCoin("uosmo", 5)}))
	assert.False(t, fee.Equal(Coins{NewCoin("uwes", 100), NewCoin("uatom", 5), NewCoin("uatom", 5)}))
	assert.True(t, Coins{}.Equal(nil))
	assert.Equal(t, "100uwes,5uatom", fee.String())
}

func TestExecuteMsgMethod(t *testing.T) {
	m := ExecuteMsg{MintTokens: &MintTokensMsg{}}
	method, err := m.Method()
	require.NoError(t, err)
	assert.Equal(t, "mint_tokens", method)

	_, err = (&ExecuteMsg{}).Method()
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = (&ExecuteMsg{MintTokens: &MintTokensMsg{}, BurnTokens: &BurnTokensMsg{}}).Method()
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestExecuteMsgJSON(t *testing.T) {
	var m ExecuteMsg
	raw := `{"force_transfer":{"denom":"factory/C1/x","amount":"10","from_address":"Ca","to_address":"Cb"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.NotNil(t, m.ForceTransfer)
	assert.Equal(t, "10", m.ForceTransfer.Amount.String())
	method, err := m.Method()
	require.NoError(t, err)
	assert.Equal(t, "force_transfer", method)
}

func TestQueryMsgMethod(t *testing.T) {
	q := QueryMsg{DenomOwner: &DenomOwnerQuery{Denom: "d"}}
	method, err := q.Method()
	require.NoError(t, err)
	assert.Equal(t, "denom_owner", method)

	_, err = (&QueryMsg{}).Method()
	assert.Error(t, err)
}

func TestResponseAttributes(t *testing.T) {
	resp := NewResponse().AddAttribute("method", "mint_tokens").AddAttribute("amount", "5")
	v, ok := resp.Attribute("amount")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
	_, ok = resp.Attribute("missing")
	assert.False(t, ok)

	data, err := json.Marshal(NewResponse())
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[],"attributes":[]}`, string(data))
}

func TestTokenFactoryErrors(t *testing.T) {
	wrapped := fmt.Errorf("处理请求失败: %w", NewInvalidDenomError("bad", "missing prefix"))

	assert.True(t, errors.Is(wrapped, ErrInvalidDenom))
	assert.False(t, errors.Is(wrapped, ErrUnauthorized))
	assert.Equal(t, TokenFactoryErrorInvalidDenom, ErrorKindOf(wrapped))
	assert.Equal(t, TokenFactoryErrorUnknown, ErrorKindOf(errors.New("other")))

	tfErr, ok := AsTokenFactoryError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "bad", tfErr.Denom)

	_, ok = AsTokenFactoryError(nil)
	assert.False(t, ok)

	assert.Equal(t, "Unauthorized", NewUnauthorizedError().Error())
	assert.Equal(t, "amount was zero, must be positive", NewZeroAmountError().Error())
	assert.Equal(t, "DenomAlreadyExists", TokenFactoryErrorDenomAlreadyExists.String())
}
