package graphqlserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

func newGraphDB(t *testing.T) (*gorm.DB, uint, uint) {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("graphql_test_%d.db", time.Now().UnixNano()))
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

	fc := inventoryEntity.FulfillmentCenter{Name: "FC"}
	db.Create(&fc)
	w := inventoryEntity.Warehouse{FulfillmentCenterID: fc.FulfillmentCenterID, Name: "A", Location: "Giza"}
	db.Create(&w)
	p := productEntity.Product{SKU: "SKU-G", Name: "Widget", Price: 2}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := inventoryService.New(db, inventoryService.Config{AllowNegativeAdjustment: true, DefaultReorderPoint: 10, MaxRetries: 3})
	if err := svc.ReceivePurchase("po-1", w.WarehouseID, []inventoryService.LineItem{{ProductID: p.ProductID, Quantity: 8}}); err != nil {
		t.Fatalf("receive: %v", err)
	}
	return db, p.ProductID, w.WarehouseID
}

func TestSchemaParses(t *testing.T) {
	db, _, _ := newGraphDB(t)
	if _, err := NewSchema(db); err != nil {
		t.Fatalf("parse schema: %v", err)
	}
}

func TestQuery_WarehousesAndStockLevels(t *testing.T) {
	db, productID, _ := newGraphDB(t)
	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	query := fmt.Sprintf(`{
		warehouses { warehouseId name location }
		stockLevels(productId: %d) { currentQuantity reservedQuantity availableToSell }
		stockStatus(productId: %d) { sku status reorderPoint }
	}`, productID, productID)
	resp := schema.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query errors: %v", resp.Errors)
	}

	var data struct {
		Warehouses []struct {
			WarehouseID int32   `json:"warehouseId"`
			Name        string  `json:"name"`
			Location    *string `json:"location"`
		} `json:"warehouses"`
		StockLevels []struct {
			CurrentQuantity int32 `json:"currentQuantity"`
			AvailableToSell int32 `json:"availableToSell"`
		} `json:"stockLevels"`
		StockStatus struct {
			SKU          string `json:"sku"`
			Status       string `json:"status"`
			ReorderPoint int32  `json:"reorderPoint"`
		} `json:"stockStatus"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Warehouses) != 1 || data.Warehouses[0].Name != "A" {
		t.Errorf("warehouses = %+v, want one named A", data.Warehouses)
	}
	if len(data.StockLevels) != 1 || data.StockLevels[0].CurrentQuantity != 8 {
		t.Errorf("stockLevels = %+v, want one with quantity 8", data.StockLevels)
	}
	if data.StockStatus.SKU != "SKU-G" || data.StockStatus.Status != inventoryService.StatusLowStock {
		t.Errorf("stockStatus = %+v, want SKU-G low_stock", data.StockStatus)
	}
}

func TestQuery_Transactions(t *testing.T) {
	db, _, warehouseID := newGraphDB(t)
	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	query := fmt.Sprintf(`{ transactions(warehouseId: %d, limit: 10) { type quantity referenceId } }`, warehouseID)
	resp := schema.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query errors: %v", resp.Errors)
	}
	var data struct {
		Transactions []struct {
			Type        string  `json:"type"`
			Quantity    int32   `json:"quantity"`
			ReferenceID *string `json:"referenceId"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(data.Transactions))
	}
	tx := data.Transactions[0]
	if tx.Type != inventoryEntity.TypePurchaseIn || tx.Quantity != 8 || tx.ReferenceID == nil || *tx.ReferenceID != "po-1" {
		t.Errorf("transaction = %+v, want purchase_in quantity 8 reference po-1", tx)
	}
}
