package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, price float64, wordCount int, active bool) *models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:  1,
		Slug:        slug,
		Title:       slug,
		PriceAmount: models.NewMoneyFromFloat(price),
		WordCount:   wordCount,
		IsActive:    active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "blog-article", 179, 1500, true)

	if err := svc.AddItem(1, product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := svc.ListItems(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single cart line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity want 3, got %d", items[0].Quantity)
	}
}

func TestCartAddItemRejectsInactiveProduct(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "retired-service", 99, 0, false)

	if err := svc.AddItem(1, product.ID, 1); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got: %v", err)
	}
	if err := svc.AddItem(1, product.ID+100, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
	if err := svc.AddItem(1, product.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got: %v", err)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "landing-page", 249, 800, true)

	if err := svc.AddItem(7, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateQuantity(7, product.ID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}

	items, err := svc.ListItems(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
	if err := svc.UpdateQuantity(7, product.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got: %v", err)
	}
}

func TestCartSnapshotSkipsInactiveProducts(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	active := createCartTestProduct(t, db, "line-edit", 129, 5000, true)
	retired := createCartTestProduct(t, db, "old-package", 59, 0, true)

	if err := svc.AddItem(3, active.ID, 2); err != nil {
		t.Fatalf("add active failed: %v", err)
	}
	if err := svc.AddItem(3, retired.ID, 1); err != nil {
		t.Fatalf("add retired failed: %v", err)
	}
	// 下架动作发生在加购之后，快照需要过滤掉它
	if err := db.Model(&models.Product{}).Where("id = ?", retired.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	snapshot, err := svc.Snapshot(3)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	line := snapshot.Lines[0]
	if line.ProductID != active.ID {
		t.Fatalf("line product want %d, got %d", active.ID, line.ProductID)
	}
	if line.TotalPrice.String() != "258.00" {
		t.Fatalf("line total want 258.00, got %s", line.TotalPrice)
	}
	if line.WordCount == nil || *line.WordCount != 5000 {
		t.Fatalf("line word count want 5000, got %v", line.WordCount)
	}
}

func TestSnapshotFromItemsUsesCatalogPrices(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "content-audit", 499, 0, true)

	snapshot, err := svc.SnapshotFromItems([]SnapshotItem{{ProductID: product.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].TotalPrice.String() != "998.00" {
		t.Fatalf("total want 998.00, got %s", snapshot.Lines[0].TotalPrice)
	}
	if snapshot.Lines[0].WordCount != nil {
		t.Fatalf("word count should be nil for non word-count product")
	}

	if _, err := svc.SnapshotFromItems([]SnapshotItem{{ProductID: product.ID, Quantity: 0}}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got: %v", err)
	}
	if _, err := svc.SnapshotFromItems([]SnapshotItem{{ProductID: product.ID + 50, Quantity: 1}}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}
