package models

import (
	"time"
)

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Type        string    `gorm:"size:20;index" json:"type"` // 文章分类标签
	Title       string    `gorm:"size:100;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Thumbnail   string    `gorm:"size:30" json:"thumbnail"`
	Credit      int       `gorm:"default:0" json:"credit"`      // 阅读本文消耗的积分，0 为免费
	ReadCount   int       `gorm:"default:0" json:"read_count"`  // 阅读量，只增不减
	ReplyCount  int       `gorm:"default:0" json:"reply_count"` // 评论数
	Recommended int       `gorm:"default:0" json:"recommended"` // 管理员推荐
	Hidden      int       `gorm:"default:0" json:"hidden"`      // 软删除/下架
	Drafted     int       `gorm:"default:0" json:"drafted"`     // 草稿，不进入任何公开列表
	Checked     int       `gorm:"default:1" json:"checked"`     // 管理员审核通过
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Headline 旧版字段别名，历史调用方以 headline 访问文章标题
func (a *Article) Headline() string {
	return a.Title
}

// SetHeadline 旧版字段别名，写入仍落在 title 上
func (a *Article) SetHeadline(headline string) {
	a.Title = headline
}

// Visible 是否对公众可见：非草稿、未隐藏且已审核
func (a *Article) Visible() bool {
	return a.Hidden == 0 && a.Drafted == 0 && a.Checked == 1
}
