package services

import (
	"testing"
	"woniunote/internal/db"
	"woniunote/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个用例一个内存库。限制为单连接，
// 否则连接池里的第二个连接会拿到另一个空的 :memory: 库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))

	// 预置卡片分类，与线上种子保持一致
	require.NoError(t, database.Create(&models.CardCategory{Name: "待办卡片"}).Error)
	require.NoError(t, database.Create(&models.CardCategory{Name: "已完成"}).Error)

	return database
}

func createUser(t *testing.T, database *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "x",
		Nickname: username,
		Role:     role,
		Credit:   models.DefaultCredit,
	}
	require.NoError(t, database.Create(&user).Error)
	return &user
}

// ledgerSum 用户积分明细之和
func ledgerSum(t *testing.T, database *gorm.DB, userID uint) int {
	t.Helper()
	var sum int
	err := database.Model(&models.Credit{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(credit), 0)").
		Scan(&sum).Error
	require.NoError(t, err)
	return sum
}

// requireBalanceInvariant 余额 = 初始 50 + 明细之和
func requireBalanceInvariant(t *testing.T, database *gorm.DB, userID uint) {
	t.Helper()
	var user models.User
	require.NoError(t, database.First(&user, userID).Error)
	require.Equal(t, models.DefaultCredit+ledgerSum(t, database, userID), user.Credit,
		"user %d balance out of sync with ledger", userID)
}
