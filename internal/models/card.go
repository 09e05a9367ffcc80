package models

import (
	"strconv"
	"time"
)

// 卡片优先级范围
const (
	PriorityMin = 1
	PriorityMax = 5
)

// Card 任务卡片。不涉及积分，支持硬删除。
type Card struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;index" json:"user_id"`
	Type           string       `gorm:"size:10;default:'1'" json:"type"` // 历史遗留：优先级以字符串形式存储
	Headline       string       `gorm:"size:200;not null" json:"headline"`
	Content        string       `gorm:"type:text" json:"content"`
	CardCategoryID uint         `gorm:"not null;index;default:1" json:"cardcategory_id"`
	CardCategory   CardCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"cardcategory"`
	BeginTime      *time.Time   `json:"begin_time"` // 计划开始
	EndTime        *time.Time   `json:"end_time"`   // 计划结束
	UsedTime       int          `gorm:"default:0" json:"used_time"`
	DoneTime       *time.Time   `json:"done_time"` // 非空即已完成
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type CardCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Done 完成状态由 DoneTime 派生，不单独存储
func (c *Card) Done() bool {
	return c.DoneTime != nil
}

// SetDone 切换完成状态：置为完成时记录当前时间，重开时清空
func (c *Card) SetDone(done bool) {
	if done {
		if c.DoneTime == nil {
			now := time.Now()
			c.DoneTime = &now
		}
		return
	}
	c.DoneTime = nil
}

// Priority 解析 Type 字段得到优先级，非数字时退回最低优先级
func (c *Card) Priority() int {
	p, err := strconv.Atoi(c.Type)
	if err != nil {
		return PriorityMin
	}
	if p < PriorityMin {
		return PriorityMin
	}
	if p > PriorityMax {
		return PriorityMax
	}
	return p
}

// SetPriority 将优先级写回 Type 字段，越界值收敛到合法范围
func (c *Card) SetPriority(p int) {
	if p < PriorityMin {
		p = PriorityMin
	}
	if p > PriorityMax {
		p = PriorityMax
	}
	c.Type = strconv.Itoa(p)
}
