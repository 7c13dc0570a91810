package product

import "time"

// Product represents product table. StockLevel here is a denormalized
// read-cache over the per-warehouse stock projection; it is recomputed from
// stock_level sums and never written independently of a ledger entry.
type Product struct {
	ProductID    uint      `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id,omitempty"`
	SKU          string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price        float64   `gorm:"column:price;type:decimal(12,4);not null;default:0" json:"price"`
	ReorderPoint *int      `gorm:"column:reorder_point" json:"reorder_point,omitempty"`
	StockLevel   int       `gorm:"column:stock_level;not null;default:0" json:"stock_level"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

// ReorderPointOrDefault returns the configured reorder point, or def when unset.
func (p *Product) ReorderPointOrDefault(def int) int {
	if p.ReorderPoint != nil {
		return *p.ReorderPoint
	}
	return def
}
