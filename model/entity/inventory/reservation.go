package inventory

import "time"

// Reservation states.
const (
	ReservationActive    = "active"
	ReservationReleased  = "released"
	ReservationFulfilled = "fulfilled"
)

// Reservation represents order_reservation table: stock committed to an
// unfulfilled order. Reservations adjust ReservedQuantity only; the ledger
// receives order_out entries when the order ships (fulfillment), keeping
// CurrentQuantity an exact replay of the ledger at all times.
type Reservation struct {
	ReservationID uint      `gorm:"column:reservation_id;primaryKey;autoIncrement" json:"reservation_id,omitempty"`
	OrderID       string    `gorm:"column:order_id;type:varchar(64);not null;index" json:"order_id"`
	ProductID     uint      `gorm:"column:product_id;not null;index" json:"product_id"`
	WarehouseID   uint      `gorm:"column:warehouse_id;not null;index" json:"warehouse_id"`
	Quantity      int       `gorm:"column:quantity;not null" json:"quantity"`
	Status        string    `gorm:"column:status;type:varchar(16);not null;default:'active';index" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reservation) TableName() string {
	return "order_reservation"
}
