// internal/services/testdb_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yycy134679/school-secondhand-trading-system/internal/cache"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

var testDBSeq int64

// newTestDB opens a unique in-memory SQLite database and migrates the full
// schema. Each test gets its own database; cache=shared keeps it alive
// across the pooled connections, capped at one so every query sees it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:shst_%d?mode=memory&cache=shared", seq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.ProductCondition{},
		&models.Product{},
		&models.ProductImage{},
		&models.ViewRecord{},
	))
	return db
}

func newTestProductService(t *testing.T, db *gorm.DB) *ProductService {
	t.Helper()
	c := cache.New()
	t.Cleanup(c.Stop)
	return NewProductService(db, c, nil)
}

func seedUser(t *testing.T, db *gorm.DB, account string) *models.User {
	t.Helper()
	user := &models.User{
		Account:  account,
		Nickname: "用户" + account,
		WechatID: "wx_" + account,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID int64, status models.ProductStatus) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:    sellerID,
		Title:       "考研数学辅导书",
		Description: "九成新",
		Price:       25,
		Status:      status,
		CategoryID:  1,
		ConditionID: 1,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func asServiceError(t *testing.T, err error) *ServiceError {
	t.Helper()
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	return se
}

func productStatus(t *testing.T, db *gorm.DB, id int64) models.ProductStatus {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Status
}
