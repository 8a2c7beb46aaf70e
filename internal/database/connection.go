// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yycy134679/school-secondhand-trading-system/internal/config"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("error closing database connection")
	} else {
		logrus.Info("database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.ProductCondition{},
		&models.Product{},
		&models.ProductImage{},
		&models.ViewRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_seller_status ON products(seller_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_status ON products(category_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_tag_ids ON products USING GIN(tag_ids)",
		"CREATE INDEX IF NOT EXISTS idx_view_records_user_viewed ON view_records(user_id, viewed_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('simple', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData inserts the dictionary rows a fresh installation needs.
// Existing rows are left alone.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("seeding initial data")

	conditions := []models.ProductCondition{
		{Code: models.ConditionBrandNew, Name: "全新", SortOrder: 1},
		{Code: models.ConditionNineTenths, Name: "九成新", SortOrder: 2},
		{Code: models.ConditionEightTenths, Name: "八成新", SortOrder: 3},
		{Code: models.ConditionSevenTenths, Name: "七成新及以下", SortOrder: 4},
	}
	for _, c := range conditions {
		var count int64
		db.Model(&models.ProductCondition{}).Where("code = ?", c.Code).Count(&count)
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed condition %s: %w", c.Code, err)
			}
		}
	}

	categories := []models.Category{
		{Name: "教材教辅", Description: "考研·四六级·专业课等学习资料", SortOrder: 1},
		{Name: "数码产品", Description: "电脑数码、摄影设备、智能穿戴", SortOrder: 2},
		{Name: "生活日用", Description: "宿舍电器、收纳清洁、居家好物", SortOrder: 3},
	}
	for _, c := range categories {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
		}
	}

	tags := []models.Tag{
		{Name: "几乎全新", Description: "使用不超过 1 个月，成色完好"},
		{Name: "送货上门", Description: "卖家可协商校园内送货"},
		{Name: "价格可议", Description: "支持少量砍价或换购"},
		{Name: "附带保修", Description: "仍在官方质保期内"},
	}
	for _, tg := range tags {
		var count int64
		db.Model(&models.Tag{}).Where("name = ?", tg.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&tg).Error; err != nil {
				return fmt.Errorf("failed to seed tag %s: %w", tg.Name, err)
			}
		}
	}

	logrus.Info("initial data seeding completed")
	return nil
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic.
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
