// Package http 提供代币工厂的 HTTP API 服务
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/weisyn/tokenfactory/internal/api/http/handlers"
	"github.com/weisyn/tokenfactory/internal/api/http/middleware"
	"github.com/weisyn/tokenfactory/internal/api/websocket"
	apiconfig "github.com/weisyn/tokenfactory/internal/config/api"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// 路由
const (
	PathTokenFactory = "/v1/tokenfactory"
	PathEvents       = "/v1/tokenfactory/events"
	PathHealth       = "/healthz"
	PathMetrics      = "/metrics"
)

// ServerConfig HTTP服务器依赖
type ServerConfig struct {
	Options      *apiconfig.APIOptions
	Logger       *zap.Logger
	TokenFactory handlers.TokenFactory
	Store        storage.Store
	Version      string

	// 以下可选
	Collector *metrics.Collector
	EventBus  event.EventBus
}

// Server HTTP服务器
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    *apiconfig.APIOptions
	logger     *zap.Logger
	ws         *websocket.Server
	listener   net.Listener
}

// NewServer 创建HTTP服务器并注册全部路由，不监听端口
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// 访问日志由 middleware.Logger 输出
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
	)

	s := &Server{
		router:  router,
		options: cfg.Options,
		logger:  logger,
	}

	if cfg.Collector != nil {
		m, err := middleware.NewMetrics(cfg.Collector.Registry())
		if err != nil {
			return nil, fmt.Errorf("注册HTTP指标失败: %w", err)
		}
		router.Use(m.Middleware())
		if cfg.Options.EnableMetrics {
			router.GET(PathMetrics, gin.WrapH(cfg.Collector.Handler()))
		}
	}

	router.GET(PathHealth, handlers.NewHealthHandler(cfg.Store, cfg.Version).GetHealth)

	if cfg.Options.EnableWebSocket && cfg.EventBus != nil {
		ws, err := websocket.NewServer(logger.With(zap.String("module", "websocket")), cfg.EventBus)
		if err != nil {
			return nil, err
		}
		ws.RegisterRoutes(router, PathEvents)
		s.ws = ws
	}

	limiter := middleware.NewRateLimit(logger, cfg.Options.ReadRateLimit, cfg.Options.WriteRateLimit)
	tf := router.Group(PathTokenFactory,
		limitBody(cfg.Options.MaxRequestSize),
		limiter.Middleware(isMutation),
		middleware.ErrorHandler(logger),
	)
	handlers.NewTokenFactoryHandlers(cfg.TokenFactory).RegisterRoutes(tf)

	s.httpServer = &http.Server{
		Addr:         cfg.Options.ListenAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Options.ReadTimeout,
		WriteTimeout: cfg.Options.WriteTimeout,
	}
	return s, nil
}

// isMutation 变更请求单独限流
func isMutation(c *gin.Context) bool {
	switch c.FullPath() {
	case PathTokenFactory + "/instantiate", PathTokenFactory + "/execute":
		return true
	default:
		return false
	}
}

// limitBody 限制请求体大小，超限时 JSON 解析失败
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// Handler 返回路由，供测试直接使用
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 监听端口并在后台提供服务
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	s.logger.Info("HTTP API服务器已启动", zap.String("addr", ln.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP服务器异常退出", zap.Error(err))
		}
	}()
	return nil
}

// Addr 实际监听地址，未启动时返回配置地址
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	if s.options.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.ShutdownTimeout)
		defer cancel()
	}
	if s.ws != nil {
		if err := s.ws.Close(); err != nil {
			s.logger.Warn("注销事件推送失败", zap.Error(err))
		}
	}
	start := time.Now()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭HTTP服务器失败: %w", err)
	}
	s.logger.Info("HTTP API服务器已停止", zap.Duration("elapsed", time.Since(start)))
	return nil
}
