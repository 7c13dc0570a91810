package inventory

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
)

// StockRepository owns stock_level rows. Nothing outside the projector and
// the operations service writes them.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetPair returns the projection row for a (product, warehouse) pair, or nil
// when no movement has touched the pair yet.
func (r *StockRepository) GetPair(productID, warehouseID uint) (*inventoryEntity.StockLevel, error) {
	var s inventoryEntity.StockLevel
	err := r.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreatePair returns the projection row, creating a zero row lazily on
// first use. A unique-index race on concurrent creation surfaces as
// ErrConcurrencyConflict so the caller's retry loop re-reads.
func (r *StockRepository) GetOrCreatePair(productID, warehouseID uint) (*inventoryEntity.StockLevel, error) {
	s, err := r.GetPair(productID, warehouseID)
	if err != nil || s != nil {
		return s, err
	}
	row := inventoryEntity.StockLevel{ProductID: productID, WarehouseID: warehouseID}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, inventoryEntity.ErrConcurrencyConflict
	}
	return &row, nil
}

// ApplyDelta adds deltaCurrent/deltaReserved to a row using an optimistic
// version check. Returns ErrConcurrencyConflict when the row moved under us.
func (r *StockRepository) ApplyDelta(s *inventoryEntity.StockLevel, deltaCurrent, deltaReserved int) error {
	res := r.db.Model(&inventoryEntity.StockLevel{}).
		Where("stock_level_id = ? AND version = ?", s.StockLevelID, s.Version).
		Updates(map[string]interface{}{
			"current_quantity":  gorm.Expr("current_quantity + ?", deltaCurrent),
			"reserved_quantity": gorm.Expr("reserved_quantity + ?", deltaReserved),
			"version":           gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventoryEntity.ErrConcurrencyConflict
	}
	s.CurrentQuantity += deltaCurrent
	s.ReservedQuantity += deltaReserved
	s.Version++
	return nil
}

// Overwrite force-sets a row's quantities (repair path only).
func (r *StockRepository) Overwrite(s *inventoryEntity.StockLevel, current, reserved int) error {
	res := r.db.Model(&inventoryEntity.StockLevel{}).
		Where("stock_level_id = ?", s.StockLevelID).
		Updates(map[string]interface{}{
			"current_quantity":  current,
			"reserved_quantity": reserved,
			"version":           gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	s.CurrentQuantity = current
	s.ReservedQuantity = reserved
	s.Version++
	return nil
}

// Query lists projection rows, optionally filtered by product and/or warehouse.
func (r *StockRepository) Query(productID, warehouseID *uint) ([]inventoryEntity.StockLevel, error) {
	q := r.db.Model(&inventoryEntity.StockLevel{}).Order("product_id, warehouse_id")
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	if warehouseID != nil {
		q = q.Where("warehouse_id = ?", *warehouseID)
	}
	var rows []inventoryEntity.StockLevel
	err := q.Find(&rows).Error
	return rows, err
}

// SumCurrentByProduct totals on-hand quantity for a product across all
// warehouses (feeds the denormalized Product.StockLevel read cache).
func (r *StockRepository) SumCurrentByProduct(productID uint) (int, error) {
	var total int
	err := r.db.Model(&inventoryEntity.StockLevel{}).
		Select("COALESCE(SUM(current_quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error
	return total, err
}
