// internal/services/admin_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func TestAdminDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	seller := seedUser(t, db, "seller1")
	seedUser(t, db, "buyer1")
	seedProduct(t, db, seller.ID, models.ProductForSale)
	seedProduct(t, db, seller.ID, models.ProductForSale)
	seedProduct(t, db, seller.ID, models.ProductSold)
	seedProduct(t, db, seller.ID, models.ProductDelisted)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UserCount)
	assert.Equal(t, int64(4), stats.ProductCount)
	assert.Equal(t, int64(2), stats.ForSaleCount)
	assert.Equal(t, int64(1), stats.SoldCount)
}

func TestAdminListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	for _, account := range []string{"alpha", "bravo", "charlie"} {
		seedUser(t, db, account)
	}

	users, total, err := svc.ListUsers(context.Background(), "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "alpha", users[0].Account)

	users, _, err = svc.ListUsers(context.Background(), "", 2, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "charlie", users[0].Account)
}

func TestAdminListProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	category := models.Category{Name: "教材书籍"}
	require.NoError(t, db.Create(&category).Error)

	seller := seedUser(t, db, "seller1")
	other := seedUser(t, db, "seller2")

	product := seedProduct(t, db, seller.ID, models.ProductForSale)
	require.NoError(t, db.Model(product).Update("category_id", category.ID).Error)
	seedProduct(t, db, other.ID, models.ProductSold)

	rows, total, err := svc.ListProducts(context.Background(), AdminProductFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = svc.ListProducts(context.Background(), AdminProductFilter{
		Status: string(models.ProductForSale), Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, product.ID, rows[0].ID)
	assert.Equal(t, seller.ID, rows[0].SellerID)
	assert.Equal(t, "seller1", rows[0].SellerAccount)
	assert.Equal(t, "用户seller1", rows[0].SellerNickname)
	assert.Equal(t, "教材书籍", rows[0].CategoryName)

	rows, total, err = svc.ListProducts(context.Background(), AdminProductFilter{
		SellerID: other.ID, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ProductSold, rows[0].Status)
}

func TestAdminListProductsRejectsUnknownStatus(t *testing.T) {
	svc := NewAdminService(newTestDB(t))

	_, _, err := svc.ListProducts(context.Background(), AdminProductFilter{Status: "Archived", Page: 1, PageSize: 10})
	se := asServiceError(t, err)
	assert.Equal(t, models.CodeInvalidParams, se.Code)
	assert.Equal(t, i18n.KeyInvalidParams, se.Key)
}
