package entry

import (
	"errors"
	"net/http"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateEntryRequest 定义了提交条目时请求体的JSON结构
type CreateEntryRequest struct {
	Name    string `json:"name"`
	Message string `json:"message" binding:"required"`
}

// CreatedResponse 是创建成功后的响应
type CreatedResponse struct {
	ID string `json:"id"`
}

// SetCountRequest 定义了更新反应计数时请求体的JSON结构
type SetCountRequest struct {
	Count *int `json:"count" binding:"required"`
}

// Handler 处理条目相关的HTTP请求
type Handler struct {
	svc *Service
}

// NewHandler 创建条目控制器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 在给定的路由组下注册条目路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id/reactions/:kind", h.SetReactionCount)
}

// List 获取全部条目
func (h *Handler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if err != nil {
		zap.L().Error("读取条目列表失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取条目列表失败"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Create 提交一条新条目
func (h *Handler) Create(c *gin.Context) {
	var body CreateEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	e, err := h.svc.Create(c.Request.Context(), body.Name, body.Message)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("写入条目失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "提交失败"})
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: e.EntryID})
}

// SetReactionCount 将条目的某个反应计数设为请求中的值
func (h *Handler) SetReactionCount(c *gin.Context) {
	id := c.Param("id")
	kind, err := reaction.Parse(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body SetCountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	err = h.svc.SetReactionCount(c.Request.Context(), id, kind, *body.Count)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到条目: " + id})
	default:
		zap.L().Error("更新反应计数失败", zap.String("id", id), zap.Stringer("kind", kind), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新反应失败"})
	}
}
