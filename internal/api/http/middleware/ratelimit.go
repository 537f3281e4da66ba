package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apitypes "github.com/weisyn/tokenfactory/internal/api/types"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/clock"
	infraClock "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/clock"
)

const (
	// limiterIdleTTL 超过该时长未出现的客户端丢弃其令牌桶
	limiterIdleTTL = 10 * time.Minute
	// limiterSweepInterval 两次清理之间的最短间隔
	limiterSweepInterval = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit 按客户端IP的令牌桶限流
//
// 变更请求（POST）与查询请求分别计数；限额为 0 表示不限流。
// 空闲超过 limiterIdleTTL 的令牌桶在后续请求中被清理，表大小随活跃客户端数变化。
type RateLimit struct {
	logger     *zap.Logger
	clock      infraClock.Clock
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	lastSweep  time.Time
	readLimit  int // 读操作每秒请求数
	writeLimit int // 写操作每秒请求数
}

// NewRateLimit 创建限流中间件
func NewRateLimit(logger *zap.Logger, readLimit, writeLimit int) *RateLimit {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimit{
		logger:     logger,
		clock:      clock.NewSystemClock(),
		limiters:   make(map[string]*limiterEntry),
		readLimit:  readLimit,
		writeLimit: writeLimit,
	}
}

// Middleware 返回Gin中间件
func (m *RateLimit) Middleware(isWrite func(*gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		write := isWrite(c)
		limit := m.readLimit
		if write {
			limit = m.writeLimit
		}
		if limit <= 0 {
			c.Next()
			return
		}

		if !m.limiter(c.ClientIP(), write, limit).Allow() {
			m.logger.Debug("请求被限流",
				zap.String("client_ip", c.ClientIP()),
				zap.Bool("write", write))
			WriteError(c, apitypes.CodeCommonRateLimited, "请求过于频繁，请稍后重试。",
				fmt.Sprintf("rate limit %d/s exceeded", limit), http.StatusTooManyRequests,
				map[string]interface{}{"limit": limit, "retryAfter": "1s"})
			return
		}
		c.Next()
	}
}

func (m *RateLimit) limiter(clientIP string, write bool, limit int) *rate.Limiter {
	key := "r:" + clientIP
	if write {
		key = "w:" + clientIP
	}
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(now)

	e, ok := m.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(limit), limit)}
		m.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweepLocked 丢弃空闲的令牌桶，调用方需持有 m.mu
func (m *RateLimit) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < limiterSweepInterval {
		return
	}
	m.lastSweep = now
	for key, e := range m.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(m.limiters, key)
		}
	}
}
