package models

import (
	"time"
)

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ArticleID   uint      `gorm:"not null;index" json:"article_id"`
	Article     Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IPAddr      string    `gorm:"size:30" json:"ipaddr"`
	ReplyID     uint      `gorm:"default:0;index" json:"reply_id"` // 0 为原始评论，否则指向同文章下的父评论
	AgreeCount  int       `gorm:"default:0" json:"agree_count"`    // 点赞数，只增不减
	OpposeCount int       `gorm:"default:0" json:"oppose_count"`   // 点踩数，只增不减
	Hidden      int       `gorm:"default:0" json:"hidden"`         // 软删除
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsReply 是否为回复评论
func (c *Comment) IsReply() bool {
	return c.ReplyID != 0
}
