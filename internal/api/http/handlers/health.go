package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httptypes "github.com/weisyn/tokenfactory/internal/api/http/types"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// healthCheckKey 探测用的只读键，不会被写入
var healthCheckKey = []byte("__health_check__")

// HealthHandler 健康检查
//
// GET /healthz 读取一次存储确认后端可用；不访问权威索引，索引故障
// 只影响对应请求，不影响进程存活。
type HealthHandler struct {
	store     storage.Store
	version   string
	startTime time.Time
	timeout   time.Duration
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(store storage.Store, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		version:   version,
		startTime: time.Now(),
		timeout:   2 * time.Second,
	}
}

// GetHealth 返回健康报告，存储不可用时返回 503
func (h *HealthHandler) GetHealth(c *gin.Context) {
	components := make(map[string]interface{})
	healthy := true

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	start := time.Now()
	if _, err := h.store.Get(ctx, healthCheckKey); err != nil {
		healthy = false
		components["storage"] = gin.H{"status": "unhealthy", "error": err.Error()}
	} else {
		components["storage"] = gin.H{"status": "healthy", "latency": time.Since(start).String()}
	}

	resp := httptypes.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
