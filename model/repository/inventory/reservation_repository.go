package inventory

import (
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create persists one reservation line.
func (r *ReservationRepository) Create(res *inventoryEntity.Reservation) error {
	return r.db.Create(res).Error
}

// ActiveByOrder returns the active reservation lines for an order.
func (r *ReservationRepository) ActiveByOrder(orderID string) ([]inventoryEntity.Reservation, error) {
	var rows []inventoryEntity.Reservation
	err := r.db.Where("order_id = ? AND status = ?", orderID, inventoryEntity.ReservationActive).
		Order("reservation_id").Find(&rows).Error
	return rows, err
}

// MarkStatus transitions a reservation line out of the active state.
func (r *ReservationRepository) MarkStatus(reservationID uint, status string) error {
	return r.db.Model(&inventoryEntity.Reservation{}).
		Where("reservation_id = ?", reservationID).
		Update("status", status).Error
}

// ActiveSum totals outstanding reserved quantity for a (product, warehouse)
// pair. This is the authoritative definition of reserved quantity.
func (r *ReservationRepository) ActiveSum(productID, warehouseID uint) (int, error) {
	var total int
	err := r.db.Model(&inventoryEntity.Reservation{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ? AND warehouse_id = ? AND status = ?",
			productID, warehouseID, inventoryEntity.ReservationActive).
		Scan(&total).Error
	return total, err
}
