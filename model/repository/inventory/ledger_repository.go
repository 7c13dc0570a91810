package inventory

import (
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
)

// LedgerRepository is the only construction path for ledger entries. It is
// append-only: no update or delete method exists.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append validates and persists one ledger entry. The id and timestamp are
// assigned by the store. No-op entries are disallowed so the ledger stays
// meaningful as an audit trail.
func (r *LedgerRepository) Append(draft inventoryEntity.TransactionDraft) (*inventoryEntity.Transaction, error) {
	if draft.Quantity == 0 {
		return nil, inventoryEntity.ErrZeroQuantity
	}
	if !inventoryEntity.KnownTypes[draft.Type] {
		return nil, inventoryEntity.ErrUnknownType
	}

	var count int64
	if err := r.db.Model(&productEntity.Product{}).Where("product_id = ?", draft.ProductID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, inventoryEntity.ErrProductNotFound
	}
	if err := r.db.Model(&inventoryEntity.Warehouse{}).Where("warehouse_id = ?", draft.WarehouseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, inventoryEntity.ErrWarehouseNotFound
	}

	entry := inventoryEntity.Transaction{
		Type:        draft.Type,
		Quantity:    draft.Quantity,
		ProductID:   draft.ProductID,
		WarehouseID: draft.WarehouseID,
		ReferenceID: draft.ReferenceID,
		Meta:        draft.Meta,
	}
	if err := r.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListFilter narrows List results. Zero values mean no filter.
type ListFilter struct {
	WarehouseID uint
	ProductID   uint
	Type        string
	Limit       int
}

// List returns ledger entries, newest first.
func (r *LedgerRepository) List(f ListFilter) ([]inventoryEntity.Transaction, error) {
	q := r.db.Model(&inventoryEntity.Transaction{}).Order("transaction_id DESC")
	if f.WarehouseID != 0 {
		q = q.Where("warehouse_id = ?", f.WarehouseID)
	}
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var rows []inventoryEntity.Transaction
	err := q.Find(&rows).Error
	return rows, err
}

// ByReference returns the entries sharing a reference id (e.g. both sides of
// a transfer pair), oldest first.
func (r *LedgerRepository) ByReference(referenceID string) ([]inventoryEntity.Transaction, error) {
	var rows []inventoryEntity.Transaction
	err := r.db.Where("reference_id = ?", referenceID).Order("transaction_id").Find(&rows).Error
	return rows, err
}

// SumQuantity replays the ledger for one (product, warehouse) pair. This is
// the authoritative definition of current quantity.
func (r *LedgerRepository) SumQuantity(productID, warehouseID uint) (int, error) {
	var total int
	err := r.db.Model(&inventoryEntity.Transaction{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Scan(&total).Error
	return total, err
}

// Pair identifies one (product, warehouse) projection row.
type Pair struct {
	ProductID   uint `gorm:"column:product_id"`
	WarehouseID uint `gorm:"column:warehouse_id"`
}

// Pairs returns every distinct (product, warehouse) pair present in the
// ledger. Used by reconciliation.
func (r *LedgerRepository) Pairs() ([]Pair, error) {
	var pairs []Pair
	err := r.db.Model(&inventoryEntity.Transaction{}).
		Distinct("product_id", "warehouse_id").
		Find(&pairs).Error
	return pairs, err
}
