package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

func newJobDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("reconcile_test_%d.db", time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&inventoryEntity.FulfillmentCenter{},
		&inventoryEntity.Warehouse{},
		&inventoryEntity.Transaction{},
		&inventoryEntity.StockLevel{},
		&inventoryEntity.Reservation{},
		&productEntity.Product{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestReconcile_RepairsDriftedProjections(t *testing.T) {
	db := newJobDB(t)
	fc := inventoryEntity.FulfillmentCenter{Name: "FC"}
	db.Create(&fc)
	w := inventoryEntity.Warehouse{FulfillmentCenterID: fc.FulfillmentCenterID, Name: "A"}
	db.Create(&w)
	p := productEntity.Product{SKU: "SKU-J", Name: "Thing", Price: 1}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := inventoryService.New(db, inventoryService.Config{AllowNegativeAdjustment: true, DefaultReorderPoint: 10, MaxRetries: 3})
	if err := svc.ReceivePurchase("po-1", w.WarehouseID, []inventoryService.LineItem{{ProductID: p.ProductID, Quantity: 9}}); err != nil {
		t.Fatalf("receive: %v", err)
	}

	// Drift the projection behind the service's back.
	if err := db.Model(&inventoryEntity.StockLevel{}).
		Where("product_id = ? AND warehouse_id = ?", p.ProductID, w.WarehouseID).
		Update("current_quantity", 1).Error; err != nil {
		t.Fatalf("drift: %v", err)
	}

	if err := Reconcile(db); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	level, err := inventoryRepo.NewStockRepository(db).GetPair(p.ProductID, w.WarehouseID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if level.CurrentQuantity != 9 {
		t.Errorf("current = %d, want 9 after repair", level.CurrentQuantity)
	}

	var fresh productEntity.Product
	db.First(&fresh, "product_id = ?", p.ProductID)
	if fresh.StockLevel != 9 {
		t.Errorf("denormalized stock = %d, want 9", fresh.StockLevel)
	}
}

func TestReconcile_EmptyLedgerIsNoop(t *testing.T) {
	db := newJobDB(t)
	if err := Reconcile(db); err != nil {
		t.Fatalf("reconcile on empty ledger: %v", err)
	}
}
