package models

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCredit 注册时的初始积分，不计入积分明细
const DefaultCredit = 50

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:60;not null" json:"-"` // bcrypt 哈希
	Nickname  string    `gorm:"size:30" json:"nickname"`
	Avatar    string    `gorm:"size:20" json:"avatar"`
	QQ        string    `gorm:"size:15" json:"qq"`                           // 联系方式
	Role      string    `gorm:"size:10;default:'user';not null" json:"role"` // user, admin
	Credit    int       `gorm:"default:50" json:"credit"`                    // 剩余积分
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin 判断是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
