package types

import "fmt"

// InstantiateMsg 初始化请求
//
// CreationFee 为空时，创建面额的费用取宿主参数 denom_creation_fee。
type InstantiateMsg struct {
	CreationFee *Coins `json:"creation_fee,omitempty"`
}

// ExecuteMsg 变更类请求，只能设置其中一个变体
type ExecuteMsg struct {
	UpdateConfig     *UpdateConfigMsg     `json:"update_config,omitempty"`
	CreateDenom      *CreateDenomMsg      `json:"create_denom,omitempty"`
	ChangeDenomOwner *ChangeDenomOwnerMsg `json:"change_denom_owner,omitempty"`
	ChangeAdmin      *ChangeAdminMsg      `json:"change_admin,omitempty"`
	MintTokens       *MintTokensMsg       `json:"mint_tokens,omitempty"`
	BurnTokens       *BurnTokensMsg       `json:"burn_tokens,omitempty"`
	ForceTransfer    *ForceTransferMsg    `json:"force_transfer,omitempty"`
}

// UpdateConfigMsg 更新配置（仅配置所有者）
type UpdateConfigMsg struct {
	Owner            *string `json:"owner,omitempty"`
	CreationFee      *Coins  `json:"creation_fee,omitempty"`
	ClearCreationFee bool    `json:"clear_creation_fee,omitempty"`
}

// CreateDenomMsg 在本实例命名空间下创建面额
type CreateDenomMsg struct {
	Subdenom string    `json:"subdenom"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// ChangeDenomOwnerMsg 转移本地面额所有权
type ChangeDenomOwnerMsg struct {
	Denom           string `json:"denom"`
	NewAdminAddress string `json:"new_admin_address"`
}

// ChangeAdminMsg 变更宿主侧面额管理员
type ChangeAdminMsg struct {
	Denom           string `json:"denom"`
	NewAdminAddress string `json:"new_admin_address"`
}

type MintTokensMsg struct {
	Denom         string `json:"denom"`
	Amount        Amount `json:"amount"`
	MintToAddress string `json:"mint_to_address"`
}

type BurnTokensMsg struct {
	Denom           string `json:"denom"`
	Amount          Amount `json:"amount"`
	BurnFromAddress string `json:"burn_from_address"`
}

type ForceTransferMsg struct {
	Denom       string `json:"denom"`
	Amount      Amount `json:"amount"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
}

// Method 返回请求变体名称，变体数量不为 1 时返回错误
func (m *ExecuteMsg) Method() (string, error) {
	var names []string
	if m.UpdateConfig != nil {
		names = append(names, "update_config")
	}
	if m.CreateDenom != nil {
		names = append(names, "create_denom")
	}
	if m.ChangeDenomOwner != nil {
		names = append(names, "change_denom_owner")
	}
	if m.ChangeAdmin != nil {
		names = append(names, "change_admin")
	}
	if m.MintTokens != nil {
		names = append(names, "mint_tokens")
	}
	if m.BurnTokens != nil {
		names = append(names, "burn_tokens")
	}
	if m.ForceTransfer != nil {
		names = append(names, "force_transfer")
	}
	switch len(names) {
	case 0:
		return "", NewInvalidRequestError("execute message has no variant set")
	case 1:
		return names[0], nil
	default:
		return "", NewInvalidRequestError(fmt.Sprintf("execute message sets multiple variants: %v", names))
	}
}

// TokenFactoryMsg 交给宿主执行的意图，只设置其中一个变体
//
// 本层只构造意图，不执行。
type TokenFactoryMsg struct {
	CreateDenom   *CreateDenomIntent   `json:"create_denom,omitempty"`
	ChangeAdmin   *ChangeAdminIntent   `json:"change_admin,omitempty"`
	MintTokens    *MintTokensIntent    `json:"mint_tokens,omitempty"`
	BurnTokens    *BurnTokensIntent    `json:"burn_tokens,omitempty"`
	ForceTransfer *ForceTransferIntent `json:"force_transfer,omitempty"`
}

type CreateDenomIntent struct {
	Subdenom string    `json:"subdenom"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type ChangeAdminIntent struct {
	Denom           string `json:"denom"`
	NewAdminAddress string `json:"new_admin_address"`
}

type MintTokensIntent struct {
	Denom         string `json:"denom"`
	Amount        Amount `json:"amount"`
	MintToAddress string `json:"mint_to_address"`
}

type BurnTokensIntent struct {
	Denom           string `json:"denom"`
	Amount          Amount `json:"amount"`
	BurnFromAddress string `json:"burn_from_address"`
}

type ForceTransferIntent struct {
	Denom       string `json:"denom"`
	Amount      Amount `json:"amount"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
}

// NewCreateDenomIntent 构造创建面额意图
func NewCreateDenomIntent(subdenom string, metadata *Metadata) TokenFactoryMsg {
	return TokenFactoryMsg{CreateDenom: &CreateDenomIntent{Subdenom: subdenom, Metadata: metadata}}
}

// NewChangeAdminIntent 构造变更管理员意图
func NewChangeAdminIntent(denom, newAdmin string) TokenFactoryMsg {
	return TokenFactoryMsg{ChangeAdmin: &ChangeAdminIntent{Denom: denom, NewAdminAddress: newAdmin}}
}

// NewMintIntent 构造铸造意图
func NewMintIntent(denom string, amount Amount, to string) TokenFactoryMsg {
	return TokenFactoryMsg{MintTokens: &MintTokensIntent{Denom: denom, Amount: amount, MintToAddress: to}}
}

// NewBurnIntent 构造销毁意图
func NewBurnIntent(denom string, amount Amount, from string) TokenFactoryMsg {
	return TokenFactoryMsg{BurnTokens: &BurnTokensIntent{Denom: denom, Amount: amount, BurnFromAddress: from}}
}

// NewForceTransferIntent 构造强制转账意图
func NewForceTransferIntent(denom string, amount Amount, from, to string) TokenFactoryMsg {
	return TokenFactoryMsg{ForceTransfer: &ForceTransferIntent{
		Denom:       denom,
		Amount:      amount,
		FromAddress: from,
		ToAddress:   to,
	}}
}
