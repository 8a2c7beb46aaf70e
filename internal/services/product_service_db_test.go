// internal/services/product_service_db_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func TestChangeStatusDelistThenUndo(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	updated, err := svc.ChangeStatus(context.Background(), seller.ID, product.ID, models.ActionDelist)
	require.NoError(t, err)
	assert.Equal(t, models.ProductDelisted, updated.Status)
	assert.Equal(t, models.ProductDelisted, productStatus(t, db, product.ID))

	restored, err := svc.UndoStatusChange(context.Background(), seller.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductForSale, restored.Status)
	assert.Equal(t, models.ProductForSale, productStatus(t, db, product.ID))

	// The undo record is consumed; a second undo has nothing to revert.
	_, err = svc.UndoStatusChange(context.Background(), seller.ID, product.ID)
	se := asServiceError(t, err)
	assert.Equal(t, i18n.KeyProductUndoTimeout, se.Key)
}

func TestChangeStatusRejectsNonSeller(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	intruder := seedUser(t, db, "someoneelse")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	_, err := svc.ChangeStatus(context.Background(), intruder.ID, product.ID, models.ActionDelist)
	se := asServiceError(t, err)
	assert.Equal(t, models.CodeForbidden, se.Code)
	assert.Equal(t, i18n.KeyProductEditForbidden, se.Key)
	assert.Equal(t, models.ProductForSale, productStatus(t, db, product.ID))
}

func TestChangeStatusInvalidTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")

	forSale := seedProduct(t, db, seller.ID, models.ProductForSale)
	sold := seedProduct(t, db, seller.ID, models.ProductSold)

	cases := []struct {
		name      string
		productID int64
		action    models.StatusAction
		wantKey   string
	}{
		{"relist while for sale", forSale.ID, models.ActionRelist, i18n.KeyProductCannotRelist},
		{"delist after sold", sold.ID, models.ActionDelist, i18n.KeyProductCannotDelist},
		{"sell twice", sold.ID, models.ActionSold, i18n.KeyProductCannotSell},
		{"unknown action", forSale.ID, models.StatusAction("archive"), i18n.KeyProductInvalidAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ChangeStatus(context.Background(), seller.ID, tc.productID, tc.action)
			se := asServiceError(t, err)
			assert.Equal(t, tc.wantKey, se.Key)
		})
	}
}

func TestUndoAfterWindowExpires(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	_, err := svc.ChangeStatus(context.Background(), seller.ID, product.ID, models.ActionDelist)
	require.NoError(t, err)

	// Shorten the remaining window instead of sleeping through the real one.
	val, ok := svc.cache.Get(statusCacheKey(product.ID))
	require.True(t, ok)
	svc.cache.Set(statusCacheKey(product.ID), val, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, err = svc.UndoStatusChange(context.Background(), seller.ID, product.ID)
	se := asServiceError(t, err)
	assert.Equal(t, i18n.KeyProductUndoTimeout, se.Key)
	assert.Equal(t, models.ProductDelisted, productStatus(t, db, product.ID))
}

func TestUndoLosesToLaterStatusChange(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	_, err := svc.ChangeStatus(context.Background(), seller.ID, product.ID, models.ActionDelist)
	require.NoError(t, err)

	// The row moves on underneath the undo record, as with a second request
	// racing the first. The stale record must not revert the newer state.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("status", models.ProductForSale).Error)

	_, err = svc.UndoStatusChange(context.Background(), seller.ID, product.ID)
	se := asServiceError(t, err)
	assert.Equal(t, i18n.KeyProductUndoTimeout, se.Key)
	assert.Equal(t, models.ProductForSale, productStatus(t, db, product.ID))
}

func TestUpdateStatusRequiresCurrentStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	stale := *product
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("status", models.ProductSold).Error)

	err := svc.updateStatus(context.Background(), &stale, models.ProductForSale, models.ProductDelisted)
	se := asServiceError(t, err)
	assert.Equal(t, i18n.KeyProductInvalidAction, se.Key)
	assert.Equal(t, models.ProductSold, productStatus(t, db, product.ID))
}

func TestUpdateAsAdminBypassesSellerCheck(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProductService(t, db)
	seller := seedUser(t, db, "seller1")
	admin := seedUser(t, db, "admin1")
	product := seedProduct(t, db, seller.ID, models.ProductForSale)

	title := "修正后的标题"
	updated, err := svc.Update(context.Background(), admin.ID, product.ID, UpdateProductRequest{Title: &title}, true)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, seller.ID, updated.SellerID)

	// The same edit without the admin flag stays forbidden.
	_, err = svc.Update(context.Background(), admin.ID, product.ID, UpdateProductRequest{Title: &title}, false)
	se := asServiceError(t, err)
	assert.Equal(t, models.CodeForbidden, se.Code)
}
