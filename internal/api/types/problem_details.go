// Package types 定义 API 层共用的错误响应结构
package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ProblemDetails RFC7807 Problem Details + 扩展字段
type ProblemDetails struct {
	// RFC7807 标准字段
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// 扩展字段
	Code        string                 `json:"code"`
	Layer       string                 `json:"layer"`
	UserMessage string                 `json:"userMessage"`
	Details     map[string]interface{} `json:"details,omitempty"`
	TraceID     string                 `json:"traceId"`
	Timestamp   string                 `json:"timestamp"`
}

// Error 实现 error 接口
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.UserMessage
}

// WriteJSON 将 Problem Details 写入 HTTP 响应
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewProblemDetails 创建新的 Problem Details
func NewProblemDetails(
	code string,
	layer string,
	userMessage string,
	detail string,
	status int,
	details map[string]interface{},
) *ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}
	return &ProblemDetails{
		Title:       http.StatusText(status),
		Code:        code,
		Layer:       layer,
		UserMessage: userMessage,
		Detail:      detail,
		Status:      status,
		Details:     details,
		TraceID:     uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// IsProblemDetails 检查错误是否为 Problem Details
func IsProblemDetails(err error) (*ProblemDetails, bool) {
	var pd *ProblemDetails
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// 错误码常量
const (
	CodeTFUnauthorized       = "TF_UNAUTHORIZED"
	CodeTFInvalidSubdenom    = "TF_INVALID_SUBDENOM"
	CodeTFInvalidDenom       = "TF_INVALID_DENOM"
	CodeTFZeroAmount         = "TF_ZERO_AMOUNT"
	CodeTFInvalidFund        = "TF_INVALID_FUND"
	CodeTFUninitialized      = "TF_UNINITIALIZED"
	CodeTFInvalidAddress     = "TF_INVALID_ADDRESS"
	CodeTFDenomAlreadyExists = "TF_DENOM_ALREADY_EXISTS"
	CodeTFInvalidRequest     = "TF_INVALID_REQUEST"
	CodeTFIndexUnavailable   = "TF_INDEX_QUERY_FAILED"

	CodeCommonValidationError    = "COMMON_VALIDATION_ERROR"
	CodeCommonInternalError      = "COMMON_INTERNAL_ERROR"
	CodeCommonRateLimited        = "COMMON_RATE_LIMITED"
	CodeCommonServiceUnavailable = "COMMON_SERVICE_UNAVAILABLE"
)

// Layer 常量
const (
	LayerTokenFactory = "tokenfactory-service"
)

type kindMapping struct {
	code        string
	status      int
	userMessage string
}

var kindMappings = map[types.TokenFactoryErrorKind]kindMapping{
	types.TokenFactoryErrorUnauthorized:       {CodeTFUnauthorized, http.StatusForbidden, "调用方不是记录的所有者。"},
	types.TokenFactoryErrorInvalidSubdenom:    {CodeTFInvalidSubdenom, http.StatusBadRequest, "subdenom 不能为空。"},
	types.TokenFactoryErrorInvalidDenom:       {CodeTFInvalidDenom, http.StatusBadRequest, "面额格式错误或不存在。"},
	types.TokenFactoryErrorZeroAmount:         {CodeTFZeroAmount, http.StatusBadRequest, "数量必须大于 0。"},
	types.TokenFactoryErrorInvalidFund:        {CodeTFInvalidFund, http.StatusBadRequest, "附带资金必须与创建费用完全一致。"},
	types.TokenFactoryErrorUninitialized:      {CodeTFUninitialized, http.StatusPreconditionFailed, "实例尚未初始化。"},
	types.TokenFactoryErrorInvalidAddress:     {CodeTFInvalidAddress, http.StatusBadRequest, "地址格式错误。"},
	types.TokenFactoryErrorDenomAlreadyExists: {CodeTFDenomAlreadyExists, http.StatusConflict, "面额已存在。"},
	types.TokenFactoryErrorInvalidRequest:     {CodeTFInvalidRequest, http.StatusBadRequest, "请求不合法。"},
}

// FromError 把分发器返回的错误转换为 Problem Details
//
// TokenFactoryError 按类别映射状态码；透传查询的索引错误映射为 502；
// 其余错误视为内部错误。
func FromError(err error, instance string) *ProblemDetails {
	if pd, ok := IsProblemDetails(err); ok {
		return pd
	}

	if tfErr, ok := types.AsTokenFactoryError(err); ok {
		m, known := kindMappings[tfErr.Kind]
		if !known {
			m = kindMapping{CodeCommonInternalError, http.StatusInternalServerError, "服务器内部错误。"}
		}
		details := map[string]interface{}{"kind": tfErr.Kind.String()}
		if tfErr.Denom != "" {
			details["denom"] = tfErr.Denom
		}
		if tfErr.Kind == types.TokenFactoryErrorInvalidSubdenom {
			details["subdenom"] = tfErr.Subdenom
		}
		if tfErr.Address != "" {
			details["address"] = tfErr.Address
		}
		if tfErr.Reason != "" {
			details["reason"] = tfErr.Reason
		}
		pd := NewProblemDetails(m.code, LayerTokenFactory, m.userMessage, tfErr.Error(), m.status, details)
		pd.Instance = instance
		return pd
	}

	if errors.Is(err, dispatcher.ErrIndexQuery) {
		pd := NewProblemDetails(CodeTFIndexUnavailable, LayerTokenFactory,
			"权威索引查询失败，请稍后重试。", err.Error(), http.StatusBadGateway, nil)
		pd.Instance = instance
		return pd
	}

	pd := NewProblemDetails(CodeCommonInternalError, LayerTokenFactory,
		"服务器内部错误，请稍后重试或联系管理员。", err.Error(), http.StatusInternalServerError, nil)
	pd.Instance = instance
	return pd
}
