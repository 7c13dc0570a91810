package inventory

import "time"

// StockLevel represents stock_level table: the materialized projection of
// the ledger, one row per (product, warehouse) pair. CurrentQuantity always
// equals the signed sum of ledger quantities for the pair; ReservedQuantity
// is the sum of active order reservations. Rows are created lazily on first
// movement and never deleted while transactions reference them.
type StockLevel struct {
	StockLevelID     uint      `gorm:"column:stock_level_id;primaryKey;autoIncrement" json:"stock_level_id,omitempty"`
	ProductID        uint      `gorm:"column:product_id;not null;uniqueIndex:idx_stock_pair" json:"product_id"`
	WarehouseID      uint      `gorm:"column:warehouse_id;not null;uniqueIndex:idx_stock_pair" json:"warehouse_id"`
	CurrentQuantity  int       `gorm:"column:current_quantity;not null;default:0" json:"current_quantity"`
	ReservedQuantity int       `gorm:"column:reserved_quantity;not null;default:0" json:"reserved_quantity"`
	Version          int       `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StockLevel) TableName() string {
	return "stock_level"
}

// AvailableToSell returns current minus reserved quantity.
func (s *StockLevel) AvailableToSell() int {
	return s.CurrentQuantity - s.ReservedQuantity
}
