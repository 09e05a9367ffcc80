package services

import (
	"errors"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"gorm.io/gorm"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add 收藏文章。同一 (用户, 文章) 始终复用一行：
// 已取消的重新置为有效，已有效的原样返回（幂等）。
func (s *FavoriteService) Add(actor *models.User, articleID uint) (*models.Favorite, error) {
	if actor == nil {
		return nil, apperr.Forbiddenf("login required")
	}

	var article models.Article
	if err := s.db.Scopes(visibleScope).First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("article %d", articleID)
		}
		return nil, err
	}

	var favorite models.Favorite
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND article_id = ?", actor.ID, articleID).First(&favorite).Error
		switch {
		case err == nil:
			if favorite.Canceled == 0 {
				return nil // 已在收藏中，无事可做
			}
			return tx.Model(&favorite).Update("canceled", 0).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorite = models.Favorite{UserID: actor.ID, ArticleID: articleID, Canceled: 0}
			// 唯一索引 (user_id, article_id) 兜底并发下的重复插入
			return tx.Create(&favorite).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	favorite.Canceled = 0
	return &favorite, nil
}

// Cancel 取消收藏。取消后对包括本人在内的所有人都不可见，
// 直到重新收藏
func (s *FavoriteService) Cancel(actor *models.User, articleID uint) error {
	if actor == nil {
		return apperr.Forbiddenf("login required")
	}
	result := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ? AND canceled = 0", actor.ID, articleID).
		Update("canceled", 1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("active favorite for article %d", articleID)
	}
	return nil
}

// Switch 按收藏记录 ID 切换收藏状态，返回切换后的 canceled 值
func (s *FavoriteService) Switch(actor *models.User, favoriteID uint) (int, error) {
	var favorite models.Favorite
	if err := s.db.First(&favorite, favoriteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFoundf("favorite %d", favoriteID)
		}
		return 0, err
	}
	if err := CanMutate(actor, favorite.UserID); err != nil {
		return 0, err
	}

	// 重新激活走与 Add 相同的可见性门槛，
	// 文章被隐藏后不能经由切换悄悄恢复收藏
	if favorite.Canceled == 1 {
		var article models.Article
		if err := s.db.Scopes(visibleScope).First(&article, favorite.ArticleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperr.NotFoundf("article %d", favorite.ArticleID)
			}
			return 0, err
		}
	}

	canceled := 1 - favorite.Canceled
	if err := s.db.Model(&favorite).Update("canceled", canceled).Error; err != nil {
		return 0, err
	}
	return canceled, nil
}

// ListActive 我的收藏列表，只含有效收藏，已取消的一律排除
func (s *FavoriteService) ListActive(userID uint, offset, limit int) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Preload("Article").
		Where("user_id = ? AND canceled = 0", userID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error
	return favorites, err
}

// IsFavorited 检查用户当前是否收藏了某文章
func (s *FavoriteService) IsFavorited(userID, articleID uint) bool {
	var count int64
	s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ? AND canceled = 0", userID, articleID).
		Count(&count)
	return count > 0
}

// CountByArticle 某文章的有效收藏数
func (s *FavoriteService) CountByArticle(articleID uint) int64 {
	var count int64
	s.db.Model(&models.Favorite{}).
		Where("article_id = ? AND canceled = 0", articleID).
		Count(&count)
	return count
}
