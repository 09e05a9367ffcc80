package handlers

import (
	"fmt"
	"net/http"
	"time"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articles  *services.ArticleService
	comments  *services.CommentService
	favorites *services.FavoriteService
}

func NewArticleHandler(articles *services.ArticleService, comments *services.CommentService, favorites *services.FavoriteService) *ArticleHandler {
	return &ArticleHandler{articles: articles, comments: comments, favorites: favorites}
}

type articleForm struct {
	Type      string `json:"type" form:"type"`
	Title     string `json:"title" form:"title"`
	Content   string `json:"content" form:"content"`
	Thumbnail string `json:"thumbnail" form:"thumbnail"`
	Credit    int    `json:"credit" form:"credit"`
	Drafted   bool   `json:"drafted" form:"drafted"`
}

func (f articleForm) input() services.ArticleInput {
	return services.ArticleInput{
		Type:      f.Type,
		Title:     f.Title,
		Content:   f.Content,
		Thumbnail: f.Thumbnail,
		Credit:    f.Credit,
	}
}

// List 公开文章列表，支持分类与标题搜索
func (h *ArticleHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := 10
	offset := (page - 1) * limit

	var err error
	var articles interface{}
	if keyword := c.Query("keyword"); keyword != "" {
		articles, err = h.articles.SearchByTitle(keyword, offset, limit)
	} else if articleType := c.Query("type"); articleType != "" {
		articles, err = h.articles.ListByType(articleType, offset, limit)
	} else {
		articles, err = h.articles.ListPublic(offset, limit)
	}
	if err != nil {
		RenderError(c, err)
		return
	}

	total, _ := h.articles.CountPublic()
	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": total, "page": page})
}

// Recommended 推荐位
func (h *ArticleHandler) Recommended(c *gin.Context) {
	articles, err := h.articles.ListRecommended(9)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Detail 文章详情：累加阅读量、付费文章一次性扣费、
// 正文渲染结果走本地缓存
func (h *ArticleHandler) Detail(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	actor := CurrentUser(c)

	article, err := h.articles.Read(actor, articleID)
	if err != nil {
		RenderError(c, err)
		return
	}

	// 渲染后的正文走缓存，更新/隐藏时主动失效
	cacheKey := fmt.Sprintf("article:html:%d", article.ID)
	rendered, ok := utils.GetCache().Get(cacheKey)
	if !ok {
		rendered = utils.RenderMarkdown(article.Content)
		utils.GetCache().Set(cacheKey, rendered, 5*time.Minute)
	}

	comments, _ := h.comments.ListByArticle(article.ID, 0, 50)
	favorited := false
	if actor != nil {
		favorited = h.favorites.IsFavorited(actor.ID, article.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"article":   article,
		"rendered":  rendered,
		"comments":  comments,
		"favorited": favorited,
	})
}

// Create 发布文章或保存草稿
func (h *ArticleHandler) Create(c *gin.Context) {
	var form articleForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	actor := CurrentUser(c)
	var err error
	var article interface{}
	if form.Drafted {
		article, err = h.articles.SaveDraft(actor, form.input())
	} else {
		article, err = h.articles.Publish(actor, form.input())
	}
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Update 编辑文章
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	var form articleForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.articles.Update(CurrentUser(c), articleID, form.input()); err != nil {
		RenderError(c, err)
		return
	}
	utils.GetCache().Delete(fmt.Sprintf("article:html:%d", articleID))
	c.JSON(http.StatusOK, gin.H{"message": "已更新"})
}

// PublishDraft 草稿转正式发布
func (h *ArticleHandler) PublishDraft(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	article, err := h.articles.PublishDraft(CurrentUser(c), articleID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Hide 作者或管理员隐藏文章
func (h *ArticleHandler) Hide(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	if err := h.articles.Hide(CurrentUser(c), articleID); err != nil {
		RenderError(c, err)
		return
	}
	utils.GetCache().Delete(fmt.Sprintf("article:html:%d", articleID))
	c.JSON(http.StatusOK, gin.H{"message": "已隐藏"})
}

// Drafts 我的草稿箱
func (h *ArticleHandler) Drafts(c *gin.Context) {
	actor := CurrentUser(c)
	articles, err := h.articles.ListDrafts(actor, actor.ID)
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}
