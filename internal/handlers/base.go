package handlers

import (
	"errors"
	"net/http"
	"woniunote/internal/apperr"
	"woniunote/internal/middleware"
	"woniunote/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser 取出 LoadUser 中间件放入上下文的当前用户，未登录返回 nil
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// RenderError 把核心层错误分类翻译为 HTTP 状态码，
// 调用方能据此区分 "不存在" 和 "无权限"
func RenderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrLedger):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
