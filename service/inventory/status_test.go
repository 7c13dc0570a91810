package inventory

import (
	"testing"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/core/cache"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		available int
		reorder   int
		want      string
	}{
		{"healthy above reorder", 15, 10, StatusHealthy},
		{"low at reorder point", 10, 10, StatusLowStock},
		{"low below reorder", 3, 10, StatusLowStock},
		{"out at zero", 0, 10, StatusOutOfStock},
		{"out when negative", -2, 10, StatusOutOfStock},
		{"zero reorder point still flags empty", 0, 0, StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.available, tc.reorder); got != tc.want {
				t.Errorf("Classify(%d, %d) = %s, want %s", tc.available, tc.reorder, got, tc.want)
			}
		})
	}
}

// Reserved stock counts against availability when classifying: on-hand 10
// with 8 reserved and reorder point 5 is low stock, not healthy.
func TestDashboard_ReservationAwareClassification(t *testing.T) {
	cache.GetInstance().DeleteByTag(CacheTag)
	db := newTestDB(t)
	productID, wa, _ := seedWorld(t, db)
	reorder := 5
	if err := db.Model(&productEntity.Product{}).
		Where("product_id = ?", productID).
		Update("reorder_point", reorder).Error; err != nil {
		t.Fatalf("set reorder point: %v", err)
	}
	svc := newTestService(db)
	receive(t, svc, wa, productID, 10)
	if err := svc.ReserveForOrder("ord-1", []ReservationItem{{ProductID: productID, WarehouseID: wa, Quantity: 8}}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	report, err := svc.Dashboard(nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if report.TotalProducts != 1 || report.LowStock != 1 {
		t.Fatalf("report = %+v, want one low_stock product", report)
	}
	line := report.Products[0]
	if line.AvailableToSell != 2 {
		t.Errorf("available = %d, want 2", line.AvailableToSell)
	}
	if line.Status != StatusLowStock {
		t.Errorf("status = %s, want %s", line.Status, StatusLowStock)
	}
}

func TestDashboard_AggregatesAcrossWarehousesAndValues(t *testing.T) {
	cache.GetInstance().DeleteByTag(CacheTag)
	db := newTestDB(t)
	productID, wa, wb := seedWorld(t, db) // price 2.5
	p2 := productEntity.Product{SKU: "SKU-2", Name: "Gadget", Price: 4}
	if err := db.Create(&p2).Error; err != nil {
		t.Fatalf("seed product 2: %v", err)
	}
	svc := newTestService(db)
	receive(t, svc, wa, productID, 4)
	receive(t, svc, wb, productID, 6)
	receive(t, svc, wa, p2.ProductID, 20)

	report, err := svc.Dashboard(nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if report.TotalProducts != 2 {
		t.Fatalf("total products = %d, want 2", report.TotalProducts)
	}
	// 10*2.5 + 20*4 = 105
	if report.InventoryValue != 105 {
		t.Errorf("inventory value = %v, want 105", report.InventoryValue)
	}
	for _, line := range report.Products {
		if line.ProductID == productID && line.CurrentQuantity != 10 {
			t.Errorf("product 1 current = %d, want 10 summed across warehouses", line.CurrentQuantity)
		}
	}

	// Scoped to one warehouse the same product shows only that warehouse's units.
	scoped, err := svc.Dashboard(&wa)
	if err != nil {
		t.Fatalf("scoped dashboard: %v", err)
	}
	for _, line := range scoped.Products {
		if line.ProductID == productID && line.CurrentQuantity != 4 {
			t.Errorf("scoped current = %d, want 4", line.CurrentQuantity)
		}
	}
}

func TestDashboard_CacheDroppedOnMutation(t *testing.T) {
	cache.GetInstance().DeleteByTag(CacheTag)
	db := newTestDB(t)
	productID, wa, _ := seedWorld(t, db)
	svc := newTestService(db)
	receive(t, svc, wa, productID, 3)

	first, err := svc.Dashboard(nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if first.Products[0].CurrentQuantity != 3 {
		t.Fatalf("current = %d, want 3", first.Products[0].CurrentQuantity)
	}

	if _, err := svc.AdjustStock(productID, wa, 2, "recount"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	second, err := svc.Dashboard(nil)
	if err != nil {
		t.Fatalf("dashboard after mutation: %v", err)
	}
	if second.Products[0].CurrentQuantity != 5 {
		t.Errorf("current = %d, want 5 (stale cache served)", second.Products[0].CurrentQuantity)
	}
}

func TestProductStatusByID(t *testing.T) {
	db := newTestDB(t)
	productID, wa, wb := seedWorld(t, db)
	svc := newTestService(db)
	receive(t, svc, wa, productID, 2)
	receive(t, svc, wb, productID, 3)

	status, err := svc.ProductStatusByID(productID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CurrentQuantity != 5 {
		t.Errorf("current = %d, want 5", status.CurrentQuantity)
	}
	// Default reorder point (10) applies when the product has none.
	if status.ReorderPoint != 10 {
		t.Errorf("reorder point = %d, want default 10", status.ReorderPoint)
	}
	if status.Status != StatusLowStock {
		t.Errorf("status = %s, want %s", status.Status, StatusLowStock)
	}
}
