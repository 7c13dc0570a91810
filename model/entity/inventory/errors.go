package inventory

import "errors"

// Error taxonomy for the inventory core. Every failure is per-request; the
// ledger and projection stay consistent because operations run in a single
// transaction.
var (
	// Referenced row is absent, surfaced to the caller, never retried.
	ErrProductNotFound   = errors.New("inventory: product not found")
	ErrWarehouseNotFound = errors.New("inventory: warehouse not found")
	ErrCenterNotFound    = errors.New("inventory: fulfillment center not found")

	// Validation failures, rejected before any write.
	ErrZeroQuantity    = errors.New("inventory: quantity must be non-zero")
	ErrUnknownType     = errors.New("inventory: unknown transaction type")
	ErrInvalidTransfer = errors.New("inventory: source and destination warehouse must differ")
	ErrInvalidQuantity = errors.New("inventory: quantity must be positive")

	// Available-to-sell would go negative. Conflict, fully rolled back.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")

	// Stale projection read detected; retried internally a bounded number
	// of times before surfacing as a transient failure.
	ErrConcurrencyConflict = errors.New("inventory: concurrent stock update")

	// Warehouse referenced by ledger entries or stock levels cannot be deleted.
	ErrWarehouseInUse = errors.New("inventory: warehouse has inventory history")

	// Fulfillment requires an outstanding reservation.
	ErrNoActiveReservation = errors.New("inventory: no active reservation for order")
)
