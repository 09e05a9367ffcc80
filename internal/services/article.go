package services

import (
	"errors"
	"strings"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"gorm.io/gorm"
)

// ArticleInput 发布/编辑文章的可写字段
type ArticleInput struct {
	Type      string
	Title     string
	Content   string
	Thumbnail string
	Credit    int // 阅读本文消耗的积分，0 为免费
}

type ArticleService struct {
	db      *gorm.DB
	credits *CreditService
}

func NewArticleService(db *gorm.DB, credits *CreditService) *ArticleService {
	return &ArticleService{db: db, credits: credits}
}

// visibleScope 公开列表过滤条件：未隐藏、非草稿、已审核
func visibleScope(db *gorm.DB) *gorm.DB {
	return db.Where("hidden = 0 AND drafted = 0 AND checked = 1")
}

func validateArticleInput(in ArticleInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validationf("article title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return apperr.Validationf("article content is required")
	}
	if in.Credit < 0 {
		return apperr.Validationf("article credit must not be negative")
	}
	return nil
}

// Publish 发布文章并在同一事务内发放发布奖励。
// 普通用户发布后进入待审核（checked=0），管理员发布直接过审。
func (s *ArticleService) Publish(actor *models.User, in ArticleInput) (*models.Article, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	article := models.Article{
		UserID:    actor.ID,
		Type:      in.Type,
		Title:     in.Title,
		Content:   in.Content,
		Thumbnail: in.Thumbnail,
		Credit:    in.Credit,
		Drafted:   0,
		Checked:   0,
	}
	if actor.IsAdmin() {
		article.Checked = 1
	}

	// 文章入库和发布奖励绑定在同一事务：账本写失败则文章一并回滚
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		return s.credits.AwardTx(tx, actor.ID, CategoryPublish, article.ID, CreditPublish, "发布文章")
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// SaveDraft 保存草稿，不进入任何公开列表，也不发放奖励
func (s *ArticleService) SaveDraft(actor *models.User, in ArticleInput) (*models.Article, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	article := models.Article{
		UserID:    actor.ID,
		Type:      in.Type,
		Title:     in.Title,
		Content:   in.Content,
		Thumbnail: in.Thumbnail,
		Credit:    in.Credit,
		Drafted:   1,
		Checked:   0,
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// PublishDraft 将草稿转为正式发布，此时才发放发布奖励
func (s *ArticleService) PublishDraft(actor *models.User, articleID uint) (*models.Article, error) {
	article, err := s.find(articleID)
	if err != nil {
		return nil, err
	}
	if err := CanMutate(actor, article.UserID); err != nil {
		return nil, err
	}
	if article.Drafted == 0 {
		return nil, apperr.Validationf("article %d is not a draft", articleID)
	}

	checked := 0
	if actor.IsAdmin() {
		checked = 1
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(article).Updates(map[string]interface{}{
			"drafted": 0,
			"checked": checked,
		}).Error; err != nil {
			return err
		}
		return s.credits.AwardTx(tx, article.UserID, CategoryPublish, article.ID, CreditPublish, "发布文章")
	})
	if err != nil {
		return nil, err
	}
	return s.find(articleID)
}

// Update 作者或管理员编辑文章，派生字段不落库
func (s *ArticleService) Update(actor *models.User, articleID uint, in ArticleInput) error {
	article, err := s.find(articleID)
	if err != nil {
		return err
	}
	if err := CanMutate(actor, article.UserID); err != nil {
		return err
	}
	if err := validateArticleInput(in); err != nil {
		return err
	}
	return s.db.Model(article).Updates(map[string]interface{}{
		"type":      in.Type,
		"title":     in.Title,
		"content":   in.Content,
		"thumbnail": in.Thumbnail,
		"credit":    in.Credit,
	}).Error
}

// Approve 管理员审核通过
func (s *ArticleService) Approve(actor *models.User, articleID uint) error {
	if err := CanModerate(actor); err != nil {
		return err
	}
	article, err := s.find(articleID)
	if err != nil {
		return err
	}
	return s.db.Model(article).Update("checked", 1).Error
}

// Hide 作者或管理员隐藏文章（软删除）
func (s *ArticleService) Hide(actor *models.User, articleID uint) error {
	article, err := s.find(articleID)
	if err != nil {
		return err
	}
	if err := CanMutate(actor, article.UserID); err != nil {
		return err
	}
	return s.db.Model(article).Update("hidden", 1).Error
}

// Unhide 仅管理员可恢复隐藏的文章
func (s *ArticleService) Unhide(actor *models.User, articleID uint) error {
	if err := CanModerate(actor); err != nil {
		return err
	}
	article, err := s.find(articleID)
	if err != nil {
		return err
	}
	return s.db.Model(article).Update("hidden", 0).Error
}

// Recommend 管理员设置/取消推荐
func (s *ArticleService) Recommend(actor *models.User, articleID uint, recommended bool) error {
	if err := CanModerate(actor); err != nil {
		return err
	}
	article, err := s.find(articleID)
	if err != nil {
		return err
	}
	flag := 0
	if recommended {
		flag = 1
	}
	return s.db.Model(article).Update("recommended", flag).Error
}

// Get 查询单篇文章。隐藏/草稿/未过审的文章对外等同于不存在，
// 仅作者本人和管理员可见。
func (s *ArticleService) Get(actor *models.User, articleID uint) (*models.Article, error) {
	article, err := s.find(articleID)
	if err != nil {
		return nil, err
	}
	if !article.Visible() && !CanView(actor, article.UserID) {
		return nil, apperr.NotFoundf("article %d", articleID)
	}
	return article, nil
}

// Read 阅读文章：累加阅读量，付费文章对非作者读者一次性扣费，
// 重复阅读不再扣（按 (用户, read, 文章) 幂等）。
func (s *ArticleService) Read(actor *models.User, articleID uint) (*models.Article, error) {
	article, err := s.Get(actor, articleID)
	if err != nil {
		return nil, err
	}
	if article.Credit > 0 && actor == nil {
		return nil, apperr.Forbiddenf("login required to read paid article")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Article{}).
			Where("id = ?", article.ID).
			UpdateColumn("read_count", gorm.Expr("read_count + ?", 1)).Error; err != nil {
			return err
		}
		if article.Credit > 0 && actor.ID != article.UserID {
			return s.credits.AwardTx(tx, actor.ID, CategoryRead, article.ID, -article.Credit, "阅读文章")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	article.ReadCount++
	return article, nil
}

// ListPublic 公开文章列表，倒序分页
func (s *ArticleService) ListPublic(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Scopes(visibleScope).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

// ListByType 按分类标签查询公开文章
func (s *ArticleService) ListByType(articleType string, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Scopes(visibleScope).
		Where("type = ?", articleType).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

// SearchByTitle 按标题模糊搜索公开文章
func (s *ArticleService) SearchByTitle(keyword string, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Scopes(visibleScope).
		Where("title LIKE ?", "%"+keyword+"%").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

// CountPublic 公开文章总数
func (s *ArticleService) CountPublic() (int64, error) {
	var count int64
	err := s.db.Model(&models.Article{}).Scopes(visibleScope).Count(&count).Error
	return count, err
}

// ListRecommended 推荐位文章
func (s *ArticleService) ListRecommended(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Scopes(visibleScope).
		Where("recommended = 1").
		Order("id DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// ListByUser 查询某用户的文章。作者本人和管理员能看到隐藏和
// 待审核的，其他访客只能看到公开的；草稿走 ListDrafts。
func (s *ArticleService) ListByUser(actor *models.User, userID uint, offset, limit int) ([]models.Article, error) {
	query := s.db.Where("user_id = ? AND drafted = 0", userID)
	if !CanView(actor, userID) {
		query = query.Scopes(visibleScope)
	}
	var articles []models.Article
	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// ListDrafts 草稿箱，仅作者本人和管理员
func (s *ArticleService) ListDrafts(actor *models.User, userID uint) ([]models.Article, error) {
	if err := CanMutate(actor, userID); err != nil {
		return nil, err
	}
	var articles []models.Article
	err := s.db.Where("user_id = ? AND drafted = 1", userID).
		Order("id DESC").
		Find(&articles).Error
	return articles, err
}

// ListPending 待审核文章列表，仅管理员
func (s *ArticleService) ListPending(actor *models.User) ([]models.Article, error) {
	if err := CanModerate(actor); err != nil {
		return nil, err
	}
	var articles []models.Article
	err := s.db.Where("drafted = 0 AND checked = 0").
		Order("id DESC").
		Find(&articles).Error
	return articles, err
}

func (s *ArticleService) find(articleID uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("article %d", articleID)
		}
		return nil, err
	}
	return &article, nil
}
