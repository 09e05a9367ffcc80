package handlers

import (
	"net/http"
	"time"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cards *services.CardService
}

func NewCardHandler(cards *services.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type cardForm struct {
	Headline   string     `json:"headline" form:"headline"`
	Content    string     `json:"content" form:"content"`
	CategoryID uint       `json:"category_id" form:"category_id"`
	Priority   int        `json:"priority" form:"priority"`
	BeginTime  *time.Time `json:"begin_time" form:"begin_time"`
	EndTime    *time.Time `json:"end_time" form:"end_time"`
}

func (f cardForm) input() services.CardInput {
	return services.CardInput{
		Headline:   f.Headline,
		Content:    f.Content,
		CategoryID: f.CategoryID,
		Priority:   f.Priority,
		BeginTime:  f.BeginTime,
		EndTime:    f.EndTime,
	}
}

// List 我的卡片，可按分类与完成状态过滤
func (h *CardHandler) List(c *gin.Context) {
	categoryID := utils.StringToUint(c.Query("category"))
	var done *bool
	if v := c.Query("done"); v != "" {
		b := v == "1" || v == "true"
		done = &b
	}

	cards, err := h.cards.List(CurrentUser(c), categoryID, done)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// Create 新建卡片
func (h *CardHandler) Create(c *gin.Context) {
	var form cardForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	card, err := h.cards.Create(CurrentUser(c), form.input())
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// Update 编辑卡片
func (h *CardHandler) Update(c *gin.Context) {
	cardID := utils.StringToUint(c.Param("id"))
	var form cardForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.cards.Update(CurrentUser(c), cardID, form.input()); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已更新"})
}

// Delete 删除卡片
func (h *CardHandler) Delete(c *gin.Context) {
	cardID := utils.StringToUint(c.Param("id"))
	if err := h.cards.Delete(CurrentUser(c), cardID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

// Done 标记完成
func (h *CardHandler) Done(c *gin.Context) {
	cardID := utils.StringToUint(c.Param("id"))
	card, err := h.cards.MarkDone(CurrentUser(c), cardID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card, "done": card.Done()})
}

// Reopen 重新打开
func (h *CardHandler) Reopen(c *gin.Context) {
	cardID := utils.StringToUint(c.Param("id"))
	card, err := h.cards.Reopen(CurrentUser(c), cardID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card, "done": card.Done()})
}

// ListCategories 全部卡片分类
func (h *CardHandler) ListCategories(c *gin.Context) {
	categories, err := h.cards.ListCategories()
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory 新建分类
func (h *CardHandler) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			name = body.Name
		}
	}
	category, err := h.cards.CreateCategory(CurrentUser(c), name)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// DeleteCategory 删除分类，reassign_to 非零时卡片整体迁移
func (h *CardHandler) DeleteCategory(c *gin.Context) {
	categoryID := utils.StringToUint(c.Param("id"))
	reassignTo := utils.StringToUint(c.Query("reassign_to"))
	if err := h.cards.DeleteCategory(CurrentUser(c), categoryID, reassignTo); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}
