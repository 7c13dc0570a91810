package inventory

import (
	"encoding/json"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/core/cache"
	productRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/product"
)

// Stock status classes, computed read-side and never persisted.
const (
	StatusHealthy    = "healthy"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// Classify buckets a product by available-to-sell against its reorder point.
// Negative availability (possible under the permissive adjustment policy)
// counts as out of stock.
func Classify(availableToSell, reorderPoint int) string {
	switch {
	case availableToSell <= 0:
		return StatusOutOfStock
	case availableToSell <= reorderPoint:
		return StatusLowStock
	default:
		return StatusHealthy
	}
}

// ProductStatus is one dashboard line.
type ProductStatus struct {
	ProductID       uint    `json:"product_id"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	CurrentQuantity int     `json:"current_quantity"`
	ReservedQuantity int    `json:"reserved_quantity"`
	AvailableToSell int     `json:"available_to_sell"`
	ReorderPoint    int     `json:"reorder_point"`
	Status          string  `json:"status"`
	Value           float64 `json:"value"`
}

// DashboardReport aggregates stock health for the ops console.
type DashboardReport struct {
	WarehouseID    *uint           `json:"warehouse_id,omitempty"`
	TotalProducts  int             `json:"total_products"`
	Healthy        int             `json:"healthy"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	InventoryValue float64         `json:"inventory_value"`
	Products       []ProductStatus `json:"products"`
}

// Dashboard classifies every product with stock history, optionally scoped
// to one warehouse, and totals inventory value (on-hand × price). Results
// are cached under the inventory tag and dropped on every mutation.
func (s *Service) Dashboard(warehouseID *uint) (*DashboardReport, error) {
	cacheKeys := []interface{}{"dashboard", "all"}
	if warehouseID != nil {
		cacheKeys[1] = *warehouseID
	}
	if v, ok := cache.GetInstance().GetN(cacheKeys...); ok {
		if report, isReport := v.(*DashboardReport); isReport {
			return report, nil
		}
	}
	if warehouseID == nil && config.RedisClient != nil {
		if raw, err := config.RedisClient.Get(config.RedisCtx(), "inventory:dashboard").Result(); err == nil {
			var report DashboardReport
			if json.Unmarshal([]byte(raw), &report) == nil {
				return &report, nil
			}
		}
	}

	report, err := s.buildDashboard(warehouseID)
	if err != nil {
		return nil, err
	}

	cache.GetInstance().SetN(cacheKeys, report, 60, []string{CacheTag})
	if warehouseID == nil && config.RedisClient != nil {
		if raw, err := json.Marshal(report); err == nil {
			config.RedisClient.Set(config.RedisCtx(), "inventory:dashboard", raw, 0)
		}
	}
	return report, nil
}

func (s *Service) buildDashboard(warehouseID *uint) (*DashboardReport, error) {
	proj := NewProjector(s.db)
	levels, err := proj.Query(nil, warehouseID)
	if err != nil {
		return nil, err
	}

	type sums struct{ current, reserved int }
	perProduct := map[uint]*sums{}
	order := []uint{}
	for _, level := range levels {
		agg, ok := perProduct[level.ProductID]
		if !ok {
			agg = &sums{}
			perProduct[level.ProductID] = agg
			order = append(order, level.ProductID)
		}
		agg.current += level.CurrentQuantity
		agg.reserved += level.ReservedQuantity
	}

	products, err := productRepo.NewProductRepository(s.db).ByIDs(order)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{WarehouseID: warehouseID, Products: []ProductStatus{}}
	for _, productID := range order {
		agg := perProduct[productID]
		p, ok := products[productID]
		if !ok {
			continue
		}
		reorderPoint := p.ReorderPointOrDefault(s.cfg.DefaultReorderPoint)
		available := agg.current - agg.reserved
		status := Classify(available, reorderPoint)
		value := float64(agg.current) * p.Price

		report.TotalProducts++
		switch status {
		case StatusHealthy:
			report.Healthy++
		case StatusLowStock:
			report.LowStock++
		default:
			report.OutOfStock++
		}
		report.InventoryValue += value
		report.Products = append(report.Products, ProductStatus{
			ProductID:        productID,
			SKU:              p.SKU,
			Name:             p.Name,
			CurrentQuantity:  agg.current,
			ReservedQuantity: agg.reserved,
			AvailableToSell:  available,
			ReorderPoint:     reorderPoint,
			Status:           status,
			Value:            value,
		})
	}
	return report, nil
}

// ProductStatusByID classifies a single product across all warehouses.
func (s *Service) ProductStatusByID(productID uint) (*ProductStatus, error) {
	p, err := productRepo.NewProductRepository(s.db).Get(productID)
	if err != nil {
		return nil, err
	}
	proj := NewProjector(s.db)
	levels, err := proj.Query(&productID, nil)
	if err != nil {
		return nil, err
	}
	current, reserved := 0, 0
	for _, level := range levels {
		current += level.CurrentQuantity
		reserved += level.ReservedQuantity
	}
	reorderPoint := p.ReorderPointOrDefault(s.cfg.DefaultReorderPoint)
	available := current - reserved
	return &ProductStatus{
		ProductID:        productID,
		SKU:              p.SKU,
		Name:             p.Name,
		CurrentQuantity:  current,
		ReservedQuantity: reserved,
		AvailableToSell:  available,
		ReorderPoint:     reorderPoint,
		Status:           Classify(available, reorderPoint),
		Value:            float64(current) * p.Price,
	}, nil
}
