// Package websocket 通过 WebSocket 推送代币工厂请求事件
//
// 协议为 JSON-RPC 2.0：
//
//	→ {"jsonrpc":"2.0","id":1,"method":"tokenfactory_subscribe","params":["executed",{"method":"mint_tokens"}]}
//	← {"jsonrpc":"2.0","id":1,"result":"0x1a2b3c4d"}
//	← {"jsonrpc":"2.0","method":"tokenfactory_subscription","params":{"subscription":"0x1a2b3c4d","result":{...}}}
package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	wstypes "github.com/weisyn/tokenfactory/internal/api/websocket/types"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Server WebSocket服务器
type Server struct {
	logger              *zap.Logger
	eventBus            event.EventBus
	subscriptionManager *SubscriptionManager
	upgrader            websocket.Upgrader
}

// NewServer 创建WebSocket服务器，并在事件总线上注册分发处理器
func NewServer(logger *zap.Logger, eventBus event.EventBus) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:              logger,
		eventBus:            eventBus,
		subscriptionManager: NewSubscriptionManager(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 生产环境应严格检查Origin
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if eventBus != nil {
		if err := eventBus.Subscribe(event.EventTypeTokenFactoryExecuted, s.subscriptionManager.onExecuted); err != nil {
			return nil, fmt.Errorf("订阅执行事件失败: %w", err)
		}
		if err := eventBus.Subscribe(event.EventTypeTokenFactoryRejected, s.subscriptionManager.onRejected); err != nil {
			return nil, fmt.Errorf("订阅拒绝事件失败: %w", err)
		}
	}
	return s, nil
}

// Close 从事件总线注销
func (s *Server) Close() error {
	if s.eventBus == nil {
		return nil
	}
	if err := s.eventBus.Unsubscribe(event.EventTypeTokenFactoryExecuted, s.subscriptionManager.onExecuted); err != nil {
		return err
	}
	return s.eventBus.Unsubscribe(event.EventTypeTokenFactoryRejected, s.subscriptionManager.onRejected)
}

// Subscriptions 返回订阅管理器
func (s *Server) Subscriptions() *SubscriptionManager {
	return s.subscriptionManager
}

// HandleWebSocket 处理WebSocket连接（Gin Handler）
func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade WebSocket connection", zap.Error(err))
		return
	}

	cl := newClient()
	go s.writeLoop(conn, cl)

	defer func() {
		removed := s.subscriptionManager.CleanupByClient(cl)
		cl.close()
		if err := conn.Close(); err != nil {
			s.logger.Debug("关闭WebSocket连接失败", zap.Error(err))
		}
		s.logger.Info("WebSocket connection closed",
			zap.String("remote_addr", conn.RemoteAddr().String()),
			zap.Int("subscriptions_removed", removed))
	}()

	s.logger.Info("WebSocket connection established",
		zap.String("remote_addr", conn.RemoteAddr().String()))

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket connection closed unexpectedly", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		s.handleJSONRPCMessage(cl, message)
	}
}

// writeLoop 连接上唯一的写方，负责通知、响应与心跳
func (s *Server) writeLoop(conn *websocket.Conn, cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case data := <-cl.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("Failed to send message", zap.Error(err))
				cl.close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cl.close()
				return
			}
		}
	}
}

func (s *Server) handleJSONRPCMessage(cl *client, message []byte) {
	var request wstypes.Request
	if err := json.Unmarshal(message, &request); err != nil {
		s.sendError(cl, nil, wstypes.CodeParseError, "Parse error", nil)
		return
	}

	switch request.Method {
	case wstypes.MethodSubscribe:
		s.handleSubscribe(cl, &request)
	case wstypes.MethodUnsubscribe:
		s.handleUnsubscribe(cl, &request)
	default:
		s.sendError(cl, request.ID, wstypes.CodeMethodNotFound, "Method not found", nil)
	}
}

// handleSubscribe 参数：[subscriptionType, filter (optional)]
func (s *Server) handleSubscribe(cl *client, request *wstypes.Request) {
	var params []json.RawMessage
	if err := json.Unmarshal(request.Params, &params); err != nil || len(params) == 0 {
		s.sendError(cl, request.ID, wstypes.CodeInvalidParams, "Missing subscription type", nil)
		return
	}

	var subType string
	if err := json.Unmarshal(params[0], &subType); err != nil {
		s.sendError(cl, request.ID, wstypes.CodeInvalidParams, "Subscription type must be string", nil)
		return
	}
	var filter wstypes.Filter
	if len(params) > 1 {
		if err := json.Unmarshal(params[1], &filter); err != nil {
			s.sendError(cl, request.ID, wstypes.CodeInvalidParams, "Invalid filter", err.Error())
			return
		}
	}

	id, err := s.subscriptionManager.Subscribe(cl, subType, filter)
	if err != nil {
		s.sendError(cl, request.ID, wstypes.CodeServerError, "Failed to subscribe", err.Error())
		return
	}
	s.sendResult(cl, request.ID, id)
}

// handleUnsubscribe 参数：[subscriptionID]
func (s *Server) handleUnsubscribe(cl *client, request *wstypes.Request) {
	var params []string
	if err := json.Unmarshal(request.Params, &params); err != nil || len(params) == 0 {
		s.sendError(cl, request.ID, wstypes.CodeInvalidParams, "Missing subscription ID", nil)
		return
	}
	s.sendResult(cl, request.ID, s.subscriptionManager.Unsubscribe(cl, params[0]))
}

func (s *Server) sendResult(cl *client, id interface{}, result interface{}) {
	s.send(cl, wstypes.Response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(cl *client, id interface{}, code int, message string, data interface{}) {
	s.send(cl, wstypes.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &wstypes.Error{Code: code, Message: message, Data: data},
	})
}

func (s *Server) send(cl *client, response wstypes.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to marshal response", zap.Error(err))
		return
	}
	if !cl.enqueue(data) {
		s.logger.Warn("发送队列已满，丢弃响应")
	}
}

// RegisterRoutes 注册WebSocket路由
func (s *Server) RegisterRoutes(router gin.IRoutes, path string) {
	router.GET(path, s.HandleWebSocket)
	s.logger.Info("WebSocket server registered", zap.String("path", path))
}
