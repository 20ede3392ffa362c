package health

import (
	"net/http"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// 健康状态在接口中的取值
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Response 是健康检查接口的响应
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler 返回存储后端的健康状态，不健康时返回503
func Handler(c *gin.Context) {
	if database.IsHealthy() {
		c.JSON(http.StatusOK, Response{Status: StatusOK})
		return
	}
	c.JSON(http.StatusServiceUnavailable, Response{Status: StatusUnavailable, Error: database.LastError()})
}

// RequireHealthy 在存储后端不可用时直接返回503
func RequireHealthy() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !database.IsHealthy() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "存储服务暂时不可用，请稍后再试"})
			return
		}
		c.Next()
	}
}
