package services

import (
	"errors"
	"time"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"gorm.io/gorm"
)

// 积分类别常量，积分明细按类别记账
const (
	CategoryPublish     = "publish"      // 发布文章
	CategoryComment     = "comment"      // 发布评论
	CategoryReply       = "reply"        // 回复评论
	CategoryDailyLogin  = "daily_login"  // 每日登录
	CategoryRead        = "read"         // 阅读付费文章
	CategoryAdminAdjust = "admin_adjust" // 管理员调整
)

// 积分值常量
const (
	CreditPublish    = 5
	CreditComment    = 2
	CreditReply      = 2
	CreditDailyLogin = 1
)

// DailyCommentLimit 每天最多可发表的评论数
const DailyCommentLimit = 5

// CreditService 积分账本。用户余额的每一次变化都必须经过 Award，
// 明细行与余额更新落在同一个事务里。
type CreditService struct {
	db *gorm.DB
}

func NewCreditService(db *gorm.DB) *CreditService {
	return &CreditService{db: db}
}

// Award 使用事务记录积分明细并同步用户余额。
// 正数增加，负数扣除。撞上唯一索引说明并发的另一笔奖励已经
// 入账，整个事务回滚后按已发放处理。
func (s *CreditService) Award(userID uint, category string, target uint, amount int, description string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.AwardTx(tx, userID, category, target, amount, description)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// AwardTx 在调用方持有的事务内记账，供发布文章、发表评论等
// 把奖励和触发动作绑定在同一个事务里回滚。
// 重复奖励静默跳过：每日登录每天最多一次；带目标的类别对
// 同一 (用户, 类别, 目标) 只发一次。事务内的计数检查挡住
// 串行重试，明细表的部分唯一索引兜底并发窗口。
func (s *CreditService) AwardTx(tx *gorm.DB, userID uint, category string, target uint, amount int, description string) error {
	awarded, err := alreadyAwarded(tx, userID, category, target)
	if err != nil {
		return apperr.Ledger(err)
	}
	if awarded {
		return nil
	}

	// 1. 创建积分明细记录
	entry := models.Credit{
		UserID:      userID,
		Category:    category,
		Target:      target,
		Credit:      amount,
		Description: description,
	}
	if category == CategoryDailyLogin {
		entry.AwardDay = todayKey()
	}
	if err := tx.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 原样上抛让事务回滚，Award 会把它翻译为已发放
			return err
		}
		return apperr.Ledger(err)
	}

	// 2. 更新用户积分余额
	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("credit", gorm.Expr("credit + ?", amount))
	if result.Error != nil {
		return apperr.Ledger(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", userID)
	}

	return nil
}

// DailyLoginAward 每日登录奖励，当天已发过则静默跳过
func (s *CreditService) DailyLoginAward(userID uint) error {
	return s.Award(userID, CategoryDailyLogin, 0, CreditDailyLogin, "正常登录")
}

// AdminAdjust 管理员手工调整用户积分，可正可负，允许多次
func (s *CreditService) AdminAdjust(actor *models.User, userID uint, amount int, description string) error {
	if err := CanModerate(actor); err != nil {
		return err
	}
	if amount == 0 {
		return apperr.Validationf("adjust amount must not be zero")
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperr.Ledger(err)
	}
	if count == 0 {
		return apperr.NotFoundf("user %d", userID)
	}
	return s.Award(userID, CategoryAdminAdjust, 0, amount, description)
}

// History 倒序返回用户的积分明细，每次调用都重新查询
func (s *CreditService) History(userID uint) ([]models.Credit, error) {
	var entries []models.Credit
	err := s.db.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Ledger(err)
	}
	return entries, nil
}

// HasLoggedInToday 检查用户今日是否已领取登录奖励
func (s *CreditService) HasLoggedInToday(userID uint) bool {
	awarded, err := alreadyAwarded(s.db, userID, CategoryDailyLogin, 0)
	return err == nil && awarded
}

// CountTodayComments 统计用户今日已发表的评论数，用于每日限制
func (s *CreditService) CountTodayComments(userID uint) (int64, error) {
	startOfDay, endOfDay := todayRange()
	var count int64
	err := s.db.Model(&models.Comment{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startOfDay, endOfDay).
		Count(&count).Error
	return count, err
}

// alreadyAwarded 幂等检查：同一触发实体或同一天的登录奖励只记一次
func alreadyAwarded(tx *gorm.DB, userID uint, category string, target uint) (bool, error) {
	var count int64
	switch {
	case category == CategoryDailyLogin:
		startOfDay, endOfDay := todayRange()
		err := tx.Model(&models.Credit{}).
			Where("user_id = ? AND category = ? AND created_at >= ? AND created_at < ?",
				userID, category, startOfDay, endOfDay).
			Count(&count).Error
		return count > 0, err
	case target != 0:
		err := tx.Model(&models.Credit{}).
			Where("user_id = ? AND category = ? AND target = ?", userID, category, target).
			Count(&count).Error
		return count > 0, err
	}
	// 无目标且非每日类别（管理员调整）允许重复
	return false, nil
}

// todayRange 获取今日的开始和结束时间
func todayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return startOfDay, endOfDay
}

// todayKey 今日日期串，每日类奖励的唯一索引键
func todayKey() string {
	return time.Now().Format("2006-01-02")
}
