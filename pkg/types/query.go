package types

import "fmt"

// QueryMsg 只读请求，只能设置其中一个变体
//
// GetDenom / GetMetadata / DenomsByCreator / GetParams / GetAdmin 直接透传
// 给权威索引；Config / DenomOwner / DenomRecords 读取本地状态。
type QueryMsg struct {
	GetDenom        *GetDenomQuery        `json:"get_denom,omitempty"`
	GetMetadata     *GetMetadataQuery     `json:"get_metadata,omitempty"`
	DenomsByCreator *DenomsByCreatorQuery `json:"denoms_by_creator,omitempty"`
	GetParams       *GetParamsQuery       `json:"get_params,omitempty"`
	GetAdmin        *GetAdminQuery        `json:"get_admin,omitempty"`
	Config          *ConfigQuery          `json:"config,omitempty"`
	DenomOwner      *DenomOwnerQuery      `json:"denom_owner,omitempty"`
	DenomRecords    *DenomRecordsQuery    `json:"denom_records,omitempty"`
}

type GetDenomQuery struct {
	CreatorAddress string `json:"creator_address"`
	Subdenom       string `json:"subdenom"`
}

type GetMetadataQuery struct {
	Denom string `json:"denom"`
}

type DenomsByCreatorQuery struct {
	Creator string `json:"creator"`
}

type GetParamsQuery struct{}

type GetAdminQuery struct {
	Denom string `json:"denom"`
}

type ConfigQuery struct{}

type DenomOwnerQuery struct {
	Denom string `json:"denom"`
}

type DenomRecordsQuery struct{}

// Method 返回查询变体名称，变体数量不为 1 时返回错误
func (q *QueryMsg) Method() (string, error) {
	var names []string
	if q.GetDenom != nil {
		names = append(names, "get_denom")
	}
	if q.GetMetadata != nil {
		names = append(names, "get_metadata")
	}
	if q.DenomsByCreator != nil {
		names = append(names, "denoms_by_creator")
	}
	if q.GetParams != nil {
		names = append(names, "get_params")
	}
	if q.GetAdmin != nil {
		names = append(names, "get_admin")
	}
	if q.Config != nil {
		names = append(names, "config")
	}
	if q.DenomOwner != nil {
		names = append(names, "denom_owner")
	}
	if q.DenomRecords != nil {
		names = append(names, "denom_records")
	}
	switch len(names) {
	case 0:
		return "", NewInvalidRequestError("query message has no variant set")
	case 1:
		return names[0], nil
	default:
		return "", NewInvalidRequestError(fmt.Sprintf("query message sets multiple variants: %v", names))
	}
}

// FullDenomResponse 权威索引返回的完整面额
type FullDenomResponse struct {
	Denom string `json:"denom"`
}

type MetadataResponse struct {
	Metadata *Metadata `json:"metadata,omitempty"`
}

type DenomsByCreatorResponse struct {
	Denoms []string `json:"denoms"`
}

type ParamsResponse struct {
	Params Params `json:"params"`
}

type AdminResponse struct {
	Admin string `json:"admin"`
}

// ConfigResponse 本地配置
type ConfigResponse struct {
	Owner       string `json:"owner"`
	CreationFee *Coins `json:"creation_fee,omitempty"`
}

// DenomOwnerResponse 本地登记的面额所有者，Found 为 false 时 Owner 为空
type DenomOwnerResponse struct {
	Denom string `json:"denom"`
	Owner string `json:"owner,omitempty"`
	Found bool   `json:"found"`
}

type DenomRecordsResponse struct {
	Records []DenomRecord `json:"records"`
}
