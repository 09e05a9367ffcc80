package handlers

import (
	"net/http"
	"woniunote/internal/services"
	"woniunote/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentForm struct {
	Content string `json:"content" form:"content"`
	ReplyID uint   `json:"reply_id" form:"reply_id"`
}

// Create 发表评论或回复，正文先过净化再入库
func (h *CommentHandler) Create(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	actor := CurrentUser(c)
	content := utils.SanitizeText(form.Content)
	ipaddr := c.ClientIP()

	var err error
	var comment interface{}
	if form.ReplyID != 0 {
		comment, err = h.comments.Reply(actor, articleID, form.ReplyID, content, ipaddr)
	} else {
		comment, err = h.comments.Create(actor, articleID, content, ipaddr)
	}
	if err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListByArticle 某文章的评论，附带每条原始评论的回复
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	articleID := utils.StringToUint(c.Param("id"))
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := 20
	comments, err := h.comments.ListByArticle(articleID, (page-1)*limit, limit)
	if err != nil {
		RenderError(c, err)
		return
	}

	type commentWithReplies struct {
		Comment interface{} `json:"comment"`
		Replies interface{} `json:"replies"`
	}
	list := make([]commentWithReplies, 0, len(comments))
	for _, comment := range comments {
		replies, _ := h.comments.ListReplies(comment.ID)
		list = append(list, commentWithReplies{Comment: comment, Replies: replies})
	}

	total, _ := h.comments.CountByArticle(articleID)
	c.JSON(http.StatusOK, gin.H{"comments": list, "total": total, "page": page})
}

// Agree 点赞
func (h *CommentHandler) Agree(c *gin.Context) {
	commentID := utils.StringToUint(c.Param("id"))
	if err := h.comments.Agree(commentID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已点赞"})
}

// Oppose 点踩
func (h *CommentHandler) Oppose(c *gin.Context) {
	commentID := utils.StringToUint(c.Param("id"))
	if err := h.comments.Oppose(commentID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已点踩"})
}

// Hide 作者或管理员删除（隐藏）评论
func (h *CommentHandler) Hide(c *gin.Context) {
	commentID := utils.StringToUint(c.Param("id"))
	if err := h.comments.Hide(CurrentUser(c), commentID); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}
