package models

import (
	"time"
)

// Credit 积分明细 - 只追加，从不更新或删除。
// 任意时刻满足：用户余额 = DefaultCredit + 该用户所有明细之和。
// 两个部分唯一索引在数据库层兜底并发重复发奖：带目标的类别按
// (用户, 类别, 目标) 唯一，每日登录按 (用户, 类别, 发放日) 唯一。
type Credit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:udx_credit_award,where:target <> 0;uniqueIndex:udx_credit_day,where:award_day <> ''" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Category    string    `gorm:"size:20;not null;index;uniqueIndex:udx_credit_award;uniqueIndex:udx_credit_day" json:"category"` // 变动原因枚举
	Target      uint      `gorm:"default:0;index;uniqueIndex:udx_credit_award" json:"target"`                                    // 触发实体 ID，0 表示无（如管理员调整）
	AwardDay    string    `gorm:"size:10;not null;default:'';uniqueIndex:udx_credit_day" json:"award_day"`                       // 每日类奖励的发放日 YYYY-MM-DD，其余类别为空
	Credit      int       `gorm:"not null" json:"credit"`      // 正数为增加，负数为扣除
	Description string    `gorm:"size:100" json:"description"` // 动作描述
	CreatedAt   time.Time `json:"created_at"`
}
