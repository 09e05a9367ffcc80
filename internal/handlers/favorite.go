package handlers

import (
	"net/http"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// Add 收藏文章，重复收藏为空操作
func (h *FavoriteHandler) Add(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	favorite, err := h.favorites.Add(CurrentUser(c), articleID)
	if err != nil {
		RenderError(c, err)
		return
	}
	count := h.favorites.CountByArticle(articleID)
	c.JSON(http.StatusOK, gin.H{"favorite": favorite, "count": count})
}

// Cancel 取消收藏
func (h *FavoriteHandler) Cancel(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	if err := h.favorites.Cancel(CurrentUser(c), articleID); err != nil {
		RenderError(c, err)
		return
	}
	count := h.favorites.CountByArticle(articleID)
	c.JSON(http.StatusOK, gin.H{"message": "已取消收藏", "count": count})
}

// Switch 按收藏记录切换状态
func (h *FavoriteHandler) Switch(c *gin.Context) {
	favoriteID := utils.StringToUint(c.Param("id"))
	canceled, err := h.favorites.Switch(CurrentUser(c), favoriteID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canceled": canceled})
}

// Mine 我的收藏，只含有效收藏
func (h *FavoriteHandler) Mine(c *gin.Context) {
	actor := CurrentUser(c)
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := 20
	favorites, err := h.favorites.ListActive(actor.ID, (page-1)*limit, limit)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "page": page})
}
