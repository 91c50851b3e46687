package middleware

import (
	"fmt"
	"io"

	"employee-management/internal/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the failure envelope: {"error": {"name": ..., "message": ...}}.
type ErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorHandler is the only place failure responses are written. Handlers
// attach errors with c.Error and return; after the chain finishes the last
// error is classified, logged and rendered.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err)

		fields := []zap.Field{
			zap.String("name", appErr.Kind.Name()),
			zap.Int("status", appErr.Status()),
			zap.String("message", appErr.Message),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}
		if appErr.Err != nil {
			fields = append(fields, zap.Error(appErr.Err))
		}
		if appErr.Status() >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Warn("request rejected", fields...)
		}

		respond(c, appErr)
	}
}

// Recovery converts a panic into the InternalServerError envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		respond(c, apperror.From(fmt.Errorf("panic: %v", recovered)))
	})
}

// NotFound answers requests that match no route.
func NotFound(c *gin.Context) {
	_ = c.Error(apperror.NewNotFound("Route not found"))
}

func respond(c *gin.Context, appErr *apperror.Error) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(appErr.Status(), ErrorResponse{
		Error: ErrorBody{Name: appErr.Kind.Name(), Message: appErr.Message},
	})
}
