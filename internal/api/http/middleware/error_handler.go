package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apitypes "github.com/weisyn/tokenfactory/internal/api/types"
)

// ErrorHandler 把 handler 通过 c.Error 记录的最后一个错误写成 Problem Details
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		problem := apitypes.FromError(err, c.Request.URL.Path)
		if problem.Status >= 500 {
			logger.Error("HTTP error",
				zap.String("code", problem.Code),
				zap.String("traceId", problem.TraceID),
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		WriteProblemDetails(c, problem)
	}
}

// WriteProblemDetails 写入 Problem Details 响应
func WriteProblemDetails(c *gin.Context, problem *apitypes.ProblemDetails) {
	c.Header("Content-Type", "application/problem+json")
	c.JSON(problem.Status, problem)
	c.Abort()
}

// WriteError 写入错误响应（自动转换为 Problem Details）
func WriteError(c *gin.Context, code string, userMessage string, detail string, status int, details map[string]interface{}) {
	problem := apitypes.NewProblemDetails(
		code,
		apitypes.LayerTokenFactory,
		userMessage,
		detail,
		status,
		details,
	)
	problem.Instance = c.Request.URL.Path
	WriteProblemDetails(c, problem)
}
