package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("repo_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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

func seedPair(t *testing.T, db *gorm.DB) (productID, warehouseID uint) {
	t.Helper()
	fc := inventoryEntity.FulfillmentCenter{Name: "FC"}
	if err := db.Create(&fc).Error; err != nil {
		t.Fatalf("seed fc: %v", err)
	}
	w := inventoryEntity.Warehouse{FulfillmentCenterID: fc.FulfillmentCenterID, Name: "A"}
	if err := db.Create(&w).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	p := productEntity.Product{SKU: "SKU-R", Name: "Thing", Price: 1}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p.ProductID, w.WarehouseID
}

func TestLedgerAppend_Validation(t *testing.T) {
	db := newRepoDB(t)
	productID, warehouseID := seedPair(t, db)
	repo := NewLedgerRepository(db)

	cases := []struct {
		name  string
		draft inventoryEntity.TransactionDraft
		want  error
	}{
		{"zero quantity", inventoryEntity.TransactionDraft{Type: inventoryEntity.TypeAdjustment, Quantity: 0, ProductID: productID, WarehouseID: warehouseID}, inventoryEntity.ErrZeroQuantity},
		{"unknown type", inventoryEntity.TransactionDraft{Type: "teleport", Quantity: 1, ProductID: productID, WarehouseID: warehouseID}, inventoryEntity.ErrUnknownType},
		{"unknown product", inventoryEntity.TransactionDraft{Type: inventoryEntity.TypePurchaseIn, Quantity: 1, ProductID: 9999, WarehouseID: warehouseID}, inventoryEntity.ErrProductNotFound},
		{"unknown warehouse", inventoryEntity.TransactionDraft{Type: inventoryEntity.TypePurchaseIn, Quantity: 1, ProductID: productID, WarehouseID: 9999}, inventoryEntity.ErrWarehouseNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := repo.Append(tc.draft); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	entry, err := repo.Append(inventoryEntity.TransactionDraft{
		Type: inventoryEntity.TypePurchaseIn, Quantity: 3, ProductID: productID, WarehouseID: warehouseID, ReferenceID: "po-1",
	})
	if err != nil {
		t.Fatalf("valid append: %v", err)
	}
	if entry.TransactionID == 0 {
		t.Error("store did not assign an id")
	}
}

func TestLedgerList_NewestFirstAndFiltered(t *testing.T) {
	db := newRepoDB(t)
	productID, warehouseID := seedPair(t, db)
	repo := NewLedgerRepository(db)

	for i := 0; i < 3; i++ {
		if _, err := repo.Append(inventoryEntity.TransactionDraft{
			Type: inventoryEntity.TypePurchaseIn, Quantity: i + 1, ProductID: productID, WarehouseID: warehouseID,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if _, err := repo.Append(inventoryEntity.TransactionDraft{
		Type: inventoryEntity.TypeAdjustment, Quantity: -1, ProductID: productID, WarehouseID: warehouseID, ReferenceID: "shrinkage",
	}); err != nil {
		t.Fatalf("append adjustment: %v", err)
	}

	rows, err := repo.List(ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].TransactionID < rows[1].TransactionID {
		t.Error("list is not newest first")
	}

	byType, err := repo.List(ListFilter{Type: inventoryEntity.TypeAdjustment})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType) != 1 {
		t.Errorf("adjustment rows = %d, want 1", len(byType))
	}

	sum, err := repo.SumQuantity(productID, warehouseID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 5 { // 1+2+3-1
		t.Errorf("sum = %d, want 5", sum)
	}
}

func TestStockApplyDelta_StaleVersionConflicts(t *testing.T) {
	db := newRepoDB(t)
	productID, warehouseID := seedPair(t, db)
	repo := NewStockRepository(db)

	level, err := repo.GetOrCreatePair(productID, warehouseID)
	if err != nil {
		t.Fatalf("create pair: %v", err)
	}
	stale := *level

	if err := repo.ApplyDelta(level, 5, 0); err != nil {
		t.Fatalf("first delta: %v", err)
	}
	// A writer holding the old version must not win.
	if err := repo.ApplyDelta(&stale, 1, 0); !errors.Is(err, inventoryEntity.ErrConcurrencyConflict) {
		t.Errorf("stale write err = %v, want ErrConcurrencyConflict", err)
	}

	fresh, err := repo.GetPair(productID, warehouseID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.CurrentQuantity != 5 {
		t.Errorf("current = %d, want 5 (stale write must not apply)", fresh.CurrentQuantity)
	}
}

func TestWarehouseDelete_BlockedWhileReferenced(t *testing.T) {
	db := newRepoDB(t)
	productID, warehouseID := seedPair(t, db)
	warehouses := NewWarehouseRepository(db)

	if _, err := NewLedgerRepository(db).Append(inventoryEntity.TransactionDraft{
		Type: inventoryEntity.TypePurchaseIn, Quantity: 1, ProductID: productID, WarehouseID: warehouseID,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := warehouses.Delete(warehouseID); !errors.Is(err, inventoryEntity.ErrWarehouseInUse) {
		t.Errorf("err = %v, want ErrWarehouseInUse", err)
	}
	if ok, _ := warehouses.Exists(warehouseID); !ok {
		t.Error("warehouse vanished despite blocked delete")
	}

	if err := warehouses.Delete(9999); !errors.Is(err, inventoryEntity.ErrWarehouseNotFound) {
		t.Errorf("delete unknown: err = %v, want ErrWarehouseNotFound", err)
	}
}

func TestWarehouseCreate_RequiresFulfillmentCenter(t *testing.T) {
	db := newRepoDB(t)
	repo := NewWarehouseRepository(db)

	err := repo.Create(&inventoryEntity.Warehouse{FulfillmentCenterID: 42, Name: "orphan"})
	if !errors.Is(err, inventoryEntity.ErrCenterNotFound) {
		t.Errorf("err = %v, want ErrCenterNotFound", err)
	}
}

func TestReservationRepository_ActiveLifecycle(t *testing.T) {
	db := newRepoDB(t)
	productID, warehouseID := seedPair(t, db)
	repo := NewReservationRepository(db)

	res := inventoryEntity.Reservation{OrderID: "ord-1", ProductID: productID, WarehouseID: warehouseID, Quantity: 3}
	if err := repo.Create(&res); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := repo.ActiveByOrder("ord-1")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active rows = %d, want 1", len(active))
	}
	sum, err := repo.ActiveSum(productID, warehouseID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 3 {
		t.Errorf("active sum = %d, want 3", sum)
	}

	if err := repo.MarkStatus(res.ReservationID, inventoryEntity.ReservationReleased); err != nil {
		t.Fatalf("mark: %v", err)
	}
	active, _ = repo.ActiveByOrder("ord-1")
	if len(active) != 0 {
		t.Errorf("active rows after release = %d, want 0", len(active))
	}
	sum, _ = repo.ActiveSum(productID, warehouseID)
	if sum != 0 {
		t.Errorf("active sum after release = %d, want 0", sum)
	}
}
