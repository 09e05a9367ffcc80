package models

import (
	"time"
)

// Favorite 收藏模型 - 取消收藏只打标记不删行，同一 (用户, 文章) 始终复用一行
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"article_id"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	Canceled  int       `gorm:"default:0" json:"canceled"` // 0:收藏中, 1:已取消
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active 是否为有效收藏
func (f *Favorite) Active() bool {
	return f.Canceled == 0
}
