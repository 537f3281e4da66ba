// Package api 组装对外接口
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/tokenfactory/internal/api/http"
)

// Module 返回API模块
//
// 事件推送挂在 HTTP 服务器的 /v1/tokenfactory/events 上，不单独监听端口。
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
	)
}
