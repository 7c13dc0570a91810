package inventory

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/core/cache"
	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	productRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/product"
)

// CacheTag groups every cached inventory aggregate; mutations invalidate it.
const CacheTag = "inventory"

// Config holds inventory policy knobs.
type Config struct {
	// AllowNegativeAdjustment permits manual adjustments that drive
	// available-to-sell below zero (admin override for shrinkage audits).
	AllowNegativeAdjustment bool
	// DefaultReorderPoint applies when a product has none configured.
	DefaultReorderPoint int
	// MaxRetries bounds internal retries on optimistic-lock conflicts.
	MaxRetries int
}

// DefaultConfig derives the policy from AppConfig (env), with safe fallbacks.
func DefaultConfig() Config {
	cfg := Config{AllowNegativeAdjustment: true, DefaultReorderPoint: 10, MaxRetries: 5}
	if config.AppConfig != nil {
		cfg.AllowNegativeAdjustment = config.AppConfig.AllowNegativeAdjustment
		cfg.DefaultReorderPoint = config.AppConfig.DefaultReorderPoint
	}
	return cfg
}

// Service is the only mutation surface of the inventory core. Every
// operation appends ledger entries and updates the projection inside one
// database transaction, retried a bounded number of times on concurrent
// stock movement.
type Service struct {
	db     *gorm.DB
	cfg    Config
	search *SearchService
}

// New constructs a Service. The caller owns the DB lifecycle.
func New(db *gorm.DB, cfg Config) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &Service{db: db, cfg: cfg}
}

// WithSearch attaches an optional ledger search indexer.
func (s *Service) WithSearch(search *SearchService) *Service {
	s.search = search
	return s
}

// DB exposes the underlying handle for read-side consumers (projector, api).
func (s *Service) DB() *gorm.DB {
	return s.db
}

// Search returns the attached search service, nil when none.
func (s *Service) Search() *SearchService {
	return s.search
}

// ReorderPointDefault returns the configured default reorder point.
func (s *Service) ReorderPointDefault() int {
	return s.cfg.DefaultReorderPoint
}

// withRetry runs fn in a transaction, retrying on optimistic-lock conflicts
// with a little jitter so contending writers interleave.
func (s *Service) withRetry(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		err = s.db.Transaction(fn)
		if !errors.Is(err, inventoryEntity.ErrConcurrencyConflict) {
			return err
		}
		time.Sleep(time.Duration(rand.Intn(5)+1) * time.Millisecond)
	}
	return err
}

// invalidateAggregates drops cached dashboard figures after a commit.
func (s *Service) invalidateAggregates() {
	cache.GetInstance().DeleteByTag(CacheTag)
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), "inventory:dashboard")
	}
}

func metaJSON(kv map[string]interface{}) datatypes.JSON {
	if len(kv) == 0 {
		return nil
	}
	b, err := json.Marshal(kv)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// AdjustStock writes one adjustment entry with the given signed quantity and
// folds it into the projection. The reason lands in reference_id (shrinkage,
// damage, manual correction). Whether the adjustment may drive
// available-to-sell negative is policy, not hard-coded.
func (s *Service) AdjustStock(productID, warehouseID uint, quantity int, reason string) (*inventoryEntity.StockLevel, error) {
	if quantity == 0 {
		return nil, inventoryEntity.ErrZeroQuantity
	}
	var level *inventoryEntity.StockLevel
	err := s.withRetry(func(tx *gorm.DB) error {
		ledger := inventoryRepo.NewLedgerRepository(tx)
		proj := NewProjector(tx)

		entry, err := ledger.Append(inventoryEntity.TransactionDraft{
			Type:        inventoryEntity.TypeAdjustment,
			Quantity:    quantity,
			ProductID:   productID,
			WarehouseID: warehouseID,
			ReferenceID: reason,
		})
		if err != nil {
			return err
		}
		level, err = proj.Apply(entry)
		if err != nil {
			return err
		}
		if !s.cfg.AllowNegativeAdjustment && level.AvailableToSell() < 0 {
			return inventoryEntity.ErrInsufficientStock
		}
		return proj.RefreshProductStock(productID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateAggregates()
	s.indexRecent(productID, warehouseID)
	return level, nil
}

// TransferStock moves quantity between two warehouses as a matched
// transfer_out/transfer_in pair sharing one reference id. Both ledger writes
// and both projection updates commit together or not at all. Stock rows are
// touched in ascending warehouse-id order so opposite-direction transfers
// cannot deadlock.
func (s *Service) TransferStock(productID, fromWarehouseID, toWarehouseID uint, quantity int, reason string) (string, error) {
	if quantity <= 0 {
		return "", inventoryEntity.ErrInvalidQuantity
	}
	if fromWarehouseID == toWarehouseID {
		return "", inventoryEntity.ErrInvalidTransfer
	}
	referenceID := "tr-" + uuid.NewString()
	meta := metaJSON(map[string]interface{}{"reason": reason})

	err := s.withRetry(func(tx *gorm.DB) error {
		ledger := inventoryRepo.NewLedgerRepository(tx)
		stocks := inventoryRepo.NewStockRepository(tx)
		proj := NewProjector(tx)

		// Availability check against the source before any write.
		source, err := stocks.GetPair(productID, fromWarehouseID)
		if err != nil {
			return err
		}
		if source == nil || source.AvailableToSell() < quantity {
			// Distinguish unknown product/warehouse from plain shortage.
			if err := checkPairExists(tx, productID, fromWarehouseID); err != nil {
				return err
			}
			return inventoryEntity.ErrInsufficientStock
		}

		outDraft := inventoryEntity.TransactionDraft{
			Type:        inventoryEntity.TypeTransferOut,
			Quantity:    -quantity,
			ProductID:   productID,
			WarehouseID: fromWarehouseID,
			ReferenceID: referenceID,
			Meta:        meta,
		}
		inDraft := inventoryEntity.TransactionDraft{
			Type:        inventoryEntity.TypeTransferIn,
			Quantity:    quantity,
			ProductID:   productID,
			WarehouseID: toWarehouseID,
			ReferenceID: referenceID,
			Meta:        meta,
		}

		drafts := []inventoryEntity.TransactionDraft{outDraft, inDraft}
		if toWarehouseID < fromWarehouseID {
			drafts[0], drafts[1] = drafts[1], drafts[0]
		}
		for _, draft := range drafts {
			entry, err := ledger.Append(draft)
			if err != nil {
				return err
			}
			if _, err := proj.Apply(entry); err != nil {
				return err
			}
		}
		return proj.RefreshProductStock(productID)
	})
	if err != nil {
		return "", err
	}
	s.invalidateAggregates()
	s.indexRecent(productID, fromWarehouseID)
	return referenceID, nil
}

// ReservationItem is one order line to reserve.
type ReservationItem struct {
	ProductID   uint `json:"productId"`
	WarehouseID uint `json:"warehouseId"`
	Quantity    int  `json:"quantity"`
}

// ReserveForOrder commits stock to an unfulfilled order, all-or-nothing: a
// shortage on any line rolls back every reservation made in the same call.
// Warehouse assignment per line is the caller's allocation policy.
func (s *Service) ReserveForOrder(orderID string, items []ReservationItem) error {
	if orderID == "" || len(items) == 0 {
		return inventoryEntity.ErrInvalidQuantity
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return inventoryEntity.ErrInvalidQuantity
		}
	}
	err := s.withRetry(func(tx *gorm.DB) error {
		stocks := inventoryRepo.NewStockRepository(tx)
		reservations := inventoryRepo.NewReservationRepository(tx)

		for _, it := range items {
			level, err := stocks.GetPair(it.ProductID, it.WarehouseID)
			if err != nil {
				return err
			}
			if level == nil || level.AvailableToSell() < it.Quantity {
				if err := checkPairExists(tx, it.ProductID, it.WarehouseID); err != nil {
					return err
				}
				return inventoryEntity.ErrInsufficientStock
			}
			if err := stocks.ApplyDelta(level, 0, it.Quantity); err != nil {
				return err
			}
			if err := reservations.Create(&inventoryEntity.Reservation{
				OrderID:     orderID,
				ProductID:   it.ProductID,
				WarehouseID: it.WarehouseID,
				Quantity:    it.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAggregates()
	return nil
}

// ReleaseReservation reverses a prior reservation (order cancelled before
// shipment). Idempotent: a second call finds no active lines and is a no-op.
func (s *Service) ReleaseReservation(orderID string) error {
	err := s.withRetry(func(tx *gorm.DB) error {
		stocks := inventoryRepo.NewStockRepository(tx)
		reservations := inventoryRepo.NewReservationRepository(tx)

		rows, err := reservations.ActiveByOrder(orderID)
		if err != nil {
			return err
		}
		for _, res := range rows {
			level, err := stocks.GetPair(res.ProductID, res.WarehouseID)
			if err != nil {
				return err
			}
			if level == nil {
				continue
			}
			if err := stocks.ApplyDelta(level, 0, -res.Quantity); err != nil {
				return err
			}
			if err := reservations.MarkStatus(res.ReservationID, inventoryEntity.ReservationReleased); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAggregates()
	return nil
}

// FulfillOrder converts an active reservation into a physical decrement:
// order_out ledger entries drop current_quantity while the matching reserved
// quantity clears in the same transaction.
func (s *Service) FulfillOrder(orderID string) error {
	err := s.withRetry(func(tx *gorm.DB) error {
		ledger := inventoryRepo.NewLedgerRepository(tx)
		stocks := inventoryRepo.NewStockRepository(tx)
		reservations := inventoryRepo.NewReservationRepository(tx)
		proj := NewProjector(tx)

		rows, err := reservations.ActiveByOrder(orderID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return inventoryEntity.ErrNoActiveReservation
		}
		touched := map[uint]bool{}
		for _, res := range rows {
			if _, err := ledger.Append(inventoryEntity.TransactionDraft{
				Type:        inventoryEntity.TypeOrderOut,
				Quantity:    -res.Quantity,
				ProductID:   res.ProductID,
				WarehouseID: res.WarehouseID,
				ReferenceID: orderID,
			}); err != nil {
				return err
			}
			level, err := stocks.GetPair(res.ProductID, res.WarehouseID)
			if err != nil {
				return err
			}
			if level == nil {
				return inventoryEntity.ErrConcurrencyConflict
			}
			if err := stocks.ApplyDelta(level, -res.Quantity, -res.Quantity); err != nil {
				return err
			}
			if err := reservations.MarkStatus(res.ReservationID, inventoryEntity.ReservationFulfilled); err != nil {
				return err
			}
			touched[res.ProductID] = true
		}
		for productID := range touched {
			if err := proj.RefreshProductStock(productID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAggregates()
	return nil
}

// LineItem is one purchase or return line.
type LineItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unitCost,omitempty"`
}

// ReceivePurchase books received goods: one purchase_in entry per line at
// the purchase's designated warehouse.
func (s *Service) ReceivePurchase(purchaseID string, warehouseID uint, items []LineItem) error {
	return s.receiveLines(inventoryEntity.TypePurchaseIn, purchaseID, warehouseID, items)
}

// RestockReturn books returned goods back into stock as return_restock entries.
func (s *Service) RestockReturn(orderID string, warehouseID uint, items []LineItem) error {
	return s.receiveLines(inventoryEntity.TypeReturnRestock, orderID, warehouseID, items)
}

func (s *Service) receiveLines(entryType, referenceID string, warehouseID uint, items []LineItem) error {
	if referenceID == "" || len(items) == 0 {
		return inventoryEntity.ErrInvalidQuantity
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return inventoryEntity.ErrInvalidQuantity
		}
	}
	err := s.withRetry(func(tx *gorm.DB) error {
		ledger := inventoryRepo.NewLedgerRepository(tx)
		proj := NewProjector(tx)

		for _, it := range items {
			var meta datatypes.JSON
			if it.UnitCost > 0 {
				meta = metaJSON(map[string]interface{}{"unit_cost": it.UnitCost})
			}
			entry, err := ledger.Append(inventoryEntity.TransactionDraft{
				Type:        entryType,
				Quantity:    it.Quantity,
				ProductID:   it.ProductID,
				WarehouseID: warehouseID,
				ReferenceID: referenceID,
				Meta:        meta,
			})
			if err != nil {
				return err
			}
			if _, err := proj.Apply(entry); err != nil {
				return err
			}
			if err := proj.RefreshProductStock(it.ProductID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAggregates()
	return nil
}

// checkPairExists turns a shortage on an unknown product or warehouse into
// the right not-found error instead of a misleading conflict.
func checkPairExists(tx *gorm.DB, productID, warehouseID uint) error {
	ok, err := productRepo.NewProductRepository(tx).Exists(productID)
	if err != nil {
		return err
	}
	if !ok {
		return inventoryEntity.ErrProductNotFound
	}
	ok, err = inventoryRepo.NewWarehouseRepository(tx).Exists(warehouseID)
	if err != nil {
		return err
	}
	if !ok {
		return inventoryEntity.ErrWarehouseNotFound
	}
	return nil
}

// indexRecent pushes the latest entries for a pair into the optional search
// index, best-effort.
func (s *Service) indexRecent(productID, warehouseID uint) {
	if s.search == nil {
		return
	}
	entries, err := inventoryRepo.NewLedgerRepository(s.db).List(inventoryRepo.ListFilter{
		ProductID: productID, WarehouseID: warehouseID, Limit: 2,
	})
	if err != nil {
		return
	}
	s.search.IndexAsync(entries)
}
