package inventory

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
)

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// List returns all warehouses ordered by id.
func (r *WarehouseRepository) List() ([]inventoryEntity.Warehouse, error) {
	var rows []inventoryEntity.Warehouse
	err := r.db.Order("warehouse_id").Find(&rows).Error
	return rows, err
}

// Get returns a warehouse by id.
func (r *WarehouseRepository) Get(id uint) (*inventoryEntity.Warehouse, error) {
	var w inventoryEntity.Warehouse
	if err := r.db.First(&w, "warehouse_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventoryEntity.ErrWarehouseNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Exists reports whether a warehouse row exists.
func (r *WarehouseRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&inventoryEntity.Warehouse{}).Where("warehouse_id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create persists a warehouse after checking its fulfillment center exists.
func (r *WarehouseRepository) Create(w *inventoryEntity.Warehouse) error {
	var count int64
	if err := r.db.Model(&inventoryEntity.FulfillmentCenter{}).
		Where("fulfillment_center_id = ?", w.FulfillmentCenterID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return inventoryEntity.ErrCenterNotFound
	}
	return r.db.Create(w).Error
}

// Delete removes a warehouse. Blocked while any ledger entry or stock level
// references it: referential integrity, not cascading delete.
func (r *WarehouseRepository) Delete(id uint) error {
	var count int64
	if err := r.db.Model(&inventoryEntity.Transaction{}).Where("warehouse_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return inventoryEntity.ErrWarehouseInUse
	}
	if err := r.db.Model(&inventoryEntity.StockLevel{}).Where("warehouse_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return inventoryEntity.ErrWarehouseInUse
	}
	res := r.db.Delete(&inventoryEntity.Warehouse{}, "warehouse_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventoryEntity.ErrWarehouseNotFound
	}
	return nil
}
