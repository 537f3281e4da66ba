// Package querier 实现通过 JSON-RPC 访问宿主权威索引的客户端
package querier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
)

// Request JSON-RPC 请求
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// Response JSON-RPC 响应
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// RPCError JSON-RPC 错误
//
// Error() 只返回宿主给出的 message，便于原样嵌入上层错误。
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// Client JSON-RPC 2.0 客户端
type Client struct {
	endpoint   string
	httpClient *http.Client
	idCounter  uint64
	logger     log.Logger
}

// NewClient 创建 JSON-RPC 客户端
func NewClient(endpoint string, timeout time.Duration, logger log.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Call 发起 JSON-RPC 调用，result 非 nil 时解码结果
func (c *Client) Call(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      atomic.AddUint64(&c.idCounter, 1),
	}

	reqData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("编码请求失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqData))
	if err != nil {
		return fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.debugf("调用 %s 失败: %v", method, err)
		return fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if err := httpResp.Body.Close(); err != nil {
			c.debugf("关闭响应体失败: %v", err)
		}
	}()

	respData, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK && len(respData) == 0 {
		return fmt.Errorf("HTTP状态异常: %s", httpResp.Status)
	}

	var rpcResp Response
	if err := json.Unmarshal(respData, &rpcResp); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	if rpcResp.Error != nil {
		c.debugf("调用 %s 返回错误 %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
		return rpcResp.Error
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("解析结果失败: %w", err)
	}
	return nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
