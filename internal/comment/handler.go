package comment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateCommentRequest 定义了提交评论时请求体的JSON结构
type CreateCommentRequest struct {
	Name    string `json:"name"`
	Comment string `json:"comment" binding:"required"`
}

// CreatedResponse 是创建成功后的响应
type CreatedResponse struct {
	ID string `json:"id"`
}

// Handler 处理评论相关的HTTP请求
type Handler struct {
	svc *Service
}

// NewHandler 创建评论控制器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册评论路由，rg 应当是 /entries 路由组
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/"+SubCollection, h.List)
	rg.POST("/:id/"+SubCollection, h.Create)
}

// List 获取条目下的全部评论
func (h *Handler) List(c *gin.Context) {
	entryID := c.Param("id")
	comments, err := h.svc.List(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到条目: " + entryID})
			return
		}
		zap.L().Error("读取评论失败", zap.String("entryID", entryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取评论失败"})
		return
	}
	if comments == nil {
		comments = []Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// Create 在条目下追加一条评论
func (h *Handler) Create(c *gin.Context) {
	entryID := c.Param("id")
	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), entryID, body.Name, body.Comment)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, CreatedResponse{ID: created.CommentID})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到条目: " + entryID})
	default:
		zap.L().Error("写入评论失败", zap.String("entryID", entryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "提交评论失败"})
	}
}
