package inventory

import "time"

// FulfillmentCenter represents fulfillment_center table
type FulfillmentCenter struct {
	FulfillmentCenterID uint      `gorm:"column:fulfillment_center_id;primaryKey;autoIncrement" json:"fulfillment_center_id,omitempty"`
	Name                string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FulfillmentCenter) TableName() string {
	return "fulfillment_center"
}

// Warehouse represents warehouse table. Every warehouse belongs to exactly
// one fulfillment center; inventory operations never create warehouses.
type Warehouse struct {
	WarehouseID         uint      `gorm:"column:warehouse_id;primaryKey;autoIncrement" json:"warehouse_id,omitempty"`
	FulfillmentCenterID uint      `gorm:"column:fulfillment_center_id;not null;index" json:"fulfillment_center_id"`
	Name                string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Location            string    `gorm:"column:location;type:varchar(255)" json:"location,omitempty"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Warehouse) TableName() string {
	return "warehouse"
}
