package services

import (
	"errors"
	"strings"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db      *gorm.DB
	credits *CreditService
}

func NewCommentService(db *gorm.DB, credits *CreditService) *CommentService {
	return &CommentService{db: db, credits: credits}
}

// Create 发表原始评论。评论入库、文章回复数、评论奖励在同一事务内完成
func (s *CommentService) Create(actor *models.User, articleID uint, content, ipaddr string) (*models.Comment, error) {
	return s.insert(actor, articleID, 0, content, ipaddr, CategoryComment, CreditComment, "发布评论")
}

// Reply 回复某条评论。父评论必须存在、可见且属于同一篇文章，
// 只建模两层：回复的 ReplyID 指向原始评论
func (s *CommentService) Reply(actor *models.User, articleID, parentID uint, content, ipaddr string) (*models.Comment, error) {
	var parent models.Comment
	if err := s.db.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("comment %d", parentID)
		}
		return nil, err
	}
	if parent.Hidden == 1 {
		return nil, apperr.NotFoundf("comment %d", parentID)
	}
	if parent.ArticleID != articleID {
		return nil, apperr.NotFoundf("comment %d does not belong to article %d", parentID, articleID)
	}
	return s.insert(actor, articleID, parentID, content, ipaddr, CategoryReply, CreditReply, "回复评论")
}

func (s *CommentService) insert(actor *models.User, articleID, replyID uint, content, ipaddr, category string, reward int, action string) (*models.Comment, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validationf("comment content is required")
	}

	// 目标文章必须公开可见
	var article models.Article
	if err := s.db.Scopes(visibleScope).First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("article %d", articleID)
		}
		return nil, err
	}

	// 每日评论上限
	count, err := s.credits.CountTodayComments(actor.ID)
	if err != nil {
		return nil, err
	}
	if count >= DailyCommentLimit {
		return nil, apperr.Forbiddenf("daily comment limit of %d reached", DailyCommentLimit)
	}

	comment := models.Comment{
		UserID:    actor.ID,
		ArticleID: articleID,
		Content:   content,
		IPAddr:    ipaddr,
		ReplyID:   replyID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{}).
			Where("id = ?", articleID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1)).Error; err != nil {
			return err
		}
		// 奖励以新评论为目标键，重试时幂等
		return s.credits.AwardTx(tx, actor.ID, category, comment.ID, reward, action)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Agree 点赞计数，只增不减，不限制同一用户重复点
func (s *CommentService) Agree(commentID uint) error {
	return s.bump(commentID, "agree_count")
}

// Oppose 点踩计数，只增不减
func (s *CommentService) Oppose(commentID uint) error {
	return s.bump(commentID, "oppose_count")
}

func (s *CommentService) bump(commentID uint, column string) error {
	result := s.db.Model(&models.Comment{}).
		Where("id = ? AND hidden = 0", commentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("comment %d", commentID)
	}
	return nil
}

// Hide 作者或管理员隐藏评论（软删除），无恢复操作
func (s *CommentService) Hide(actor *models.User, commentID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("comment %d", commentID)
		}
		return err
	}
	if err := CanMutate(actor, comment.UserID); err != nil {
		return err
	}
	return s.db.Model(&comment).Update("hidden", 1).Error
}

// ListByArticle 某文章的原始评论，倒序分页
func (s *CommentService) ListByArticle(articleID uint, offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("article_id = ? AND hidden = 0 AND reply_id = 0", articleID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return comments, err
}

// ListReplies 某条原始评论下的回复，无需分页
func (s *CommentService) ListReplies(commentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("reply_id = ? AND hidden = 0", commentID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// ListByUser 某用户的全部可见评论
func (s *CommentService) ListByUser(userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("user_id = ? AND hidden = 0", userID).
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// CountByArticle 某文章的原始评论数
func (s *CommentService) CountByArticle(articleID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).
		Where("article_id = ? AND hidden = 0 AND reply_id = 0", articleID).
		Count(&count).Error
	return count, err
}
