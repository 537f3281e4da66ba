// Package handlers 提供代币工厂 HTTP API 处理器
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/tokenfactory/internal/api/http/middleware"
	httptypes "github.com/weisyn/tokenfactory/internal/api/http/types"
	apitypes "github.com/weisyn/tokenfactory/internal/api/types"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// TokenFactory 处理器依赖的分发器能力
type TokenFactory interface {
	Instantiate(ctx context.Context, info types.MessageInfo, msg types.InstantiateMsg) (*types.Response, error)
	Execute(ctx context.Context, info types.MessageInfo, msg types.ExecuteMsg) (*types.Response, error)
	Query(ctx context.Context, msg types.QueryMsg) (interface{}, error)
}

// InstantiateRequest POST /v1/tokenfactory/instantiate
type InstantiateRequest struct {
	Info types.MessageInfo    `json:"info"`
	Msg  types.InstantiateMsg `json:"msg"`
}

// ExecuteRequest POST /v1/tokenfactory/execute
type ExecuteRequest struct {
	Info types.MessageInfo `json:"info"`
	Msg  types.ExecuteMsg  `json:"msg"`
}

// TokenFactoryHandlers 代币工厂请求处理器
type TokenFactoryHandlers struct {
	tf TokenFactory
}

// NewTokenFactoryHandlers 创建处理器
func NewTokenFactoryHandlers(tf TokenFactory) *TokenFactoryHandlers {
	return &TokenFactoryHandlers{tf: tf}
}

// RegisterRoutes 注册代币工厂路由
func (h *TokenFactoryHandlers) RegisterRoutes(r gin.IRoutes) {
	r.POST("/instantiate", h.Instantiate)
	r.POST("/execute", h.Execute)
	r.POST("/query", h.Query)
}

// Instantiate 初始化实例
func (h *TokenFactoryHandlers) Instantiate(c *gin.Context) {
	var req InstantiateRequest
	if !bindJSON(c, &req) || !requireSender(c, req.Info) {
		return
	}
	resp, err := h.tf.Instantiate(c.Request.Context(), req.Info, req.Msg)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httptypes.NewSuccessResponse(resp, middleware.GetRequestID(c)))
}

// Execute 执行变更请求，成功时返回待宿主执行的意图与属性
func (h *TokenFactoryHandlers) Execute(c *gin.Context) {
	var req ExecuteRequest
	if !bindJSON(c, &req) || !requireSender(c, req.Info) {
		return
	}
	resp, err := h.tf.Execute(c.Request.Context(), req.Info, req.Msg)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httptypes.NewSuccessResponse(resp, middleware.GetRequestID(c)))
}

// Query 只读查询
func (h *TokenFactoryHandlers) Query(c *gin.Context) {
	var msg types.QueryMsg
	if !bindJSON(c, &msg) {
		return
	}
	resp, err := h.tf.Query(c.Request.Context(), msg)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httptypes.NewSuccessResponse(resp, middleware.GetRequestID(c)))
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		middleware.WriteError(c, apitypes.CodeCommonValidationError, "请求体不是合法的 JSON。",
			err.Error(), http.StatusBadRequest, nil)
		return false
	}
	return true
}

// requireSender 空调用方无法成为任何记录的所有者，直接拒绝
func requireSender(c *gin.Context, info types.MessageInfo) bool {
	if strings.TrimSpace(info.Sender) == "" {
		_ = c.Error(types.NewInvalidRequestError("info.sender is required"))
		return false
	}
	return true
}
