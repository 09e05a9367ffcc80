package handlers

import (
	"net/http"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    *services.UserService
	articles *services.ArticleService
	comments *services.CommentService
	credits  *services.CreditService
}

func NewUserHandler(users *services.UserService, articles *services.ArticleService, comments *services.CommentService, credits *services.CreditService) *UserHandler {
	return &UserHandler{users: users, articles: articles, comments: comments, credits: credits}
}

// Profile 用户主页：资料加上其公开文章和评论
func (h *UserHandler) Profile(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	user, err := h.users.Get(userID)
	if err != nil {
		RenderError(c, err)
		return
	}

	actor := CurrentUser(c)
	articles, _ := h.articles.ListByUser(actor, user.ID, 0, 50)
	comments, _ := h.comments.ListByUser(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"articles": articles,
		"comments": comments,
	})
}

// CreditHistory 我的积分明细，倒序
func (h *UserHandler) CreditHistory(c *gin.Context) {
	actor := CurrentUser(c)
	entries, err := h.credits.History(actor.ID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credits": entries, "balance": actor.Credit})
}

// UpdateProfile 更新个人资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := CurrentUser(c)
	var form struct {
		Nickname string `json:"nickname" form:"nickname"`
		Avatar   string `json:"avatar" form:"avatar"`
		QQ       string `json:"qq" form:"qq"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.users.UpdateProfile(actor, actor.ID, form.Nickname, form.Avatar, form.QQ); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已更新"})
}

// MyArticles 我的文章（含隐藏与待审核）
func (h *UserHandler) MyArticles(c *gin.Context) {
	actor := CurrentUser(c)
	articles, err := h.articles.ListByUser(actor, actor.ID, 0, 100)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}
