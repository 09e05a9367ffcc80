package db

import (
	"fmt"
	"log"
	"woniunote/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init 建立数据库连接并完成迁移。返回连接句柄由调用方注入各服务，
// 不再保留包级全局变量。
func Init(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=woniunote port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 暴露，
	// 积分账本靠它识别并发重复发奖
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")

	if err := Migrate(database); err != nil {
		return nil, err
	}

	// Seed initial card categories
	seedCardCategories(database)

	return database, nil
}

// Migrate 执行表结构迁移，测试用内存库也走这里
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Favorite{},
		&models.Credit{},
		&models.CardCategory{},
		&models.Card{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed")
	return nil
}

func seedCardCategories(database *gorm.DB) {
	// 检查是否已有分类数据
	var count int64
	database.Model(&models.CardCategory{}).Count(&count)
	if count > 0 {
		log.Println("Card categories already seeded, skipping")
		return
	}

	// 创建预设分类
	categories := []models.CardCategory{
		{Name: "待办卡片"},
		{Name: "已完成"},
	}

	for _, category := range categories {
		if err := database.Create(&category).Error; err != nil {
			log.Printf("Failed to create card category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial card categories created successfully")
}
