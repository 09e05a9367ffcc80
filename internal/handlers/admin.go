package handlers

import (
	"net/http"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员审核与调整入口，路由挂在 AdminRequired 之后，
// 服务层仍会再做一次角色校验
type AdminHandler struct {
	articles *services.ArticleService
	users    *services.UserService
	credits  *services.CreditService
}

func NewAdminHandler(articles *services.ArticleService, users *services.UserService, credits *services.CreditService) *AdminHandler {
	return &AdminHandler{articles: articles, users: users, credits: credits}
}

// Pending 待审核文章列表
func (h *AdminHandler) Pending(c *gin.Context) {
	articles, err := h.articles.ListPending(CurrentUser(c))
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Approve 审核通过
func (h *AdminHandler) Approve(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	if err := h.articles.Approve(CurrentUser(c), articleID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已通过审核"})
}

// Unhide 恢复隐藏的文章
func (h *AdminHandler) Unhide(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	if err := h.articles.Unhide(CurrentUser(c), articleID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已恢复"})
}

// Recommend 设置/取消推荐
func (h *AdminHandler) Recommend(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	recommended := c.DefaultQuery("flag", "1") == "1"
	if err := h.articles.Recommend(CurrentUser(c), articleID, recommended); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已更新推荐状态"})
}

// SetRole 调整用户角色
func (h *AdminHandler) SetRole(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	role := c.PostForm("role")
	if err := h.users.SetRole(CurrentUser(c), userID, role); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已调整角色"})
}

// AdjustCredit 管理员手工调整用户积分
func (h *AdminHandler) AdjustCredit(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	var form struct {
		Amount      int    `json:"amount" form:"amount"`
		Description string `json:"description" form:"description"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if form.Description == "" {
		form.Description = "管理员调整"
	}
	if err := h.credits.AdminAdjust(CurrentUser(c), userID, form.Amount, form.Description); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已调整积分"})
}
