package services

import (
	"errors"
	"strings"
	"time"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"gorm.io/gorm"
)

// CardInput 创建/编辑任务卡片的可写字段
type CardInput struct {
	Headline   string
	Content    string
	CategoryID uint
	Priority   int // 1..5，0 表示使用默认值
	BeginTime  *time.Time
	EndTime    *time.Time
}

type CardService struct {
	db *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{db: db}
}

// CreateCategory 新建卡片分类，分类名全局唯一
func (s *CardService) CreateCategory(actor *models.User, name string) (*models.CardCategory, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("category name is required")
	}

	var count int64
	if err := s.db.Model(&models.CardCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicatef("card category %q already exists", name)
	}

	category := models.CardCategory{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories 全部卡片分类
func (s *CardService) ListCategories() ([]models.CardCategory, error) {
	var categories []models.CardCategory
	err := s.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

// DeleteCategory 删除分类。分类下尚有卡片时必须二选一：
// reassignTo 非零则整体迁移到目标分类，为零则级联删除卡片。
func (s *CardService) DeleteCategory(actor *models.User, categoryID, reassignTo uint) error {
	if actor == nil {
		return apperr.Forbiddenf("login required")
	}
	if reassignTo == categoryID && reassignTo != 0 {
		return apperr.Validationf("cannot reassign cards to the category being deleted")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.CardCategory
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("card category %d", categoryID)
			}
			return err
		}

		if reassignTo != 0 {
			var count int64
			if err := tx.Model(&models.CardCategory{}).Where("id = ?", reassignTo).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFoundf("card category %d", reassignTo)
			}
			if err := tx.Model(&models.Card{}).
				Where("card_category_id = ?", categoryID).
				Update("card_category_id", reassignTo).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("card_category_id = ?", categoryID).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&category).Error
	})
}

// Create 新建任务卡片
func (s *CardService) Create(actor *models.User, in CardInput) (*models.Card, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	if strings.TrimSpace(in.Headline) == "" {
		return nil, apperr.Validationf("card headline is required")
	}
	if in.CategoryID == 0 {
		in.CategoryID = 1 // 默认分类
	}

	var count int64
	if err := s.db.Model(&models.CardCategory{}).Where("id = ?", in.CategoryID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFoundf("card category %d", in.CategoryID)
	}

	card := models.Card{
		UserID:         actor.ID,
		Headline:       in.Headline,
		Content:        in.Content,
		CardCategoryID: in.CategoryID,
		BeginTime:      in.BeginTime,
		EndTime:        in.EndTime,
	}
	if in.Priority != 0 {
		card.SetPriority(in.Priority)
	} else {
		card.SetPriority(models.PriorityMin)
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// Update 编辑卡片内容与排期
func (s *CardService) Update(actor *models.User, cardID uint, in CardInput) error {
	card, err := s.find(cardID)
	if err != nil {
		return err
	}
	if err := CanMutate(actor, card.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(in.Headline) == "" {
		return apperr.Validationf("card headline is required")
	}

	if in.CategoryID != 0 && in.CategoryID != card.CardCategoryID {
		var count int64
		if err := s.db.Model(&models.CardCategory{}).Where("id = ?", in.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFoundf("card category %d", in.CategoryID)
		}
		card.CardCategoryID = in.CategoryID
	}

	card.Headline = in.Headline
	card.Content = in.Content
	card.BeginTime = in.BeginTime
	card.EndTime = in.EndTime
	if in.Priority != 0 {
		card.SetPriority(in.Priority)
	}
	return s.db.Save(card).Error
}

// Delete 硬删除卡片，卡片不关联积分历史
func (s *CardService) Delete(actor *models.User, cardID uint) error {
	card, err := s.find(cardID)
	if err != nil {
		return err
	}
	if err := CanMutate(actor, card.UserID); err != nil {
		return err
	}
	return s.db.Delete(card).Error
}

// MarkDone 标记完成，donetime 记为当前时间
func (s *CardService) MarkDone(actor *models.User, cardID uint) (*models.Card, error) {
	return s.setDone(actor, cardID, true)
}

// Reopen 重新打开，donetime 清空
func (s *CardService) Reopen(actor *models.User, cardID uint) (*models.Card, error) {
	return s.setDone(actor, cardID, false)
}

func (s *CardService) setDone(actor *models.User, cardID uint, done bool) (*models.Card, error) {
	card, err := s.find(cardID)
	if err != nil {
		return nil, err
	}
	if err := CanMutate(actor, card.UserID); err != nil {
		return nil, err
	}
	card.SetDone(done)
	if err := s.db.Model(card).Update("done_time", card.DoneTime).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// Get 查询单张卡片，仅卡片主人和管理员可见
func (s *CardService) Get(actor *models.User, cardID uint) (*models.Card, error) {
	card, err := s.find(cardID)
	if err != nil {
		return nil, err
	}
	if err := CanMutate(actor, card.UserID); err != nil {
		return nil, err
	}
	return card, nil
}

// List 我的卡片列表，可按分类和完成状态过滤
func (s *CardService) List(actor *models.User, categoryID uint, done *bool) ([]models.Card, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}
	query := s.db.Preload("CardCategory").Where("user_id = ?", actor.ID)
	if categoryID != 0 {
		query = query.Where("card_category_id = ?", categoryID)
	}
	if done != nil {
		if *done {
			query = query.Where("done_time IS NOT NULL")
		} else {
			query = query.Where("done_time IS NULL")
		}
	}
	var cards []models.Card
	err := query.Order("id DESC").Find(&cards).Error
	return cards, err
}

func (s *CardService) find(cardID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("card %d", cardID)
		}
		return nil, err
	}
	return &card, nil
}
