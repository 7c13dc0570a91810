package inventory

import (
	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	productRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/product"
)

// Projector maintains stock_level rows as a pure function of the ledger and
// the reservation table. It never accepts writes from anywhere else.
// Construct with the DB (or transaction) the caller wants the work scoped to.
type Projector struct {
	db           *gorm.DB
	ledger       *inventoryRepo.LedgerRepository
	stocks       *inventoryRepo.StockRepository
	reservations *inventoryRepo.ReservationRepository
	products     *productRepo.ProductRepository
}

func NewProjector(db *gorm.DB) *Projector {
	return &Projector{
		db:           db,
		ledger:       inventoryRepo.NewLedgerRepository(db),
		stocks:       inventoryRepo.NewStockRepository(db),
		reservations: inventoryRepo.NewReservationRepository(db),
		products:     productRepo.NewProductRepository(db),
	}
}

// Apply folds a freshly appended ledger entry into the projection. All six
// entry types move physical stock, so the signed quantity lands on
// current_quantity. Reservation bookkeeping goes through the reservation
// table, not through ledger entries.
func (p *Projector) Apply(entry *inventoryEntity.Transaction) (*inventoryEntity.StockLevel, error) {
	level, err := p.stocks.GetOrCreatePair(entry.ProductID, entry.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := p.stocks.ApplyDelta(level, entry.Quantity, 0); err != nil {
		return nil, err
	}
	return level, nil
}

// Query lists projection rows.
func (p *Projector) Query(productID, warehouseID *uint) ([]inventoryEntity.StockLevel, error) {
	return p.stocks.Query(productID, warehouseID)
}

// Recompute rebuilds one projection row from a full ledger replay plus the
// active reservation sum. This is the authoritative definition of
// correctness; the repair path and the reconciliation job call it, and tests
// assert projected state equals it after every operation.
func (p *Projector) Recompute(productID, warehouseID uint) (*inventoryEntity.StockLevel, error) {
	current, err := p.ledger.SumQuantity(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	reserved, err := p.reservations.ActiveSum(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	level, err := p.stocks.GetOrCreatePair(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level.CurrentQuantity != current || level.ReservedQuantity != reserved {
		if err := p.stocks.Overwrite(level, current, reserved); err != nil {
			return nil, err
		}
	}
	return level, nil
}

// RefreshProductStock recomputes the denormalized Product.StockLevel read
// cache from stock_level sums.
func (p *Projector) RefreshProductStock(productID uint) error {
	return p.products.RefreshStockLevel(productID)
}
