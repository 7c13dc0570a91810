package inventory

import (
	"time"

	"gorm.io/datatypes"
)

// Ledger entry types. Signed quantity: positive = stock entering the
// warehouse, negative = stock leaving it.
const (
	TypePurchaseIn    = "purchase_in"
	TypeOrderOut      = "order_out"
	TypeAdjustment    = "adjustment"
	TypeTransferOut   = "transfer_out"
	TypeTransferIn    = "transfer_in"
	TypeReturnRestock = "return_restock"
)

// KnownTypes lists the valid ledger entry types.
var KnownTypes = map[string]bool{
	TypePurchaseIn:    true,
	TypeOrderOut:      true,
	TypeAdjustment:    true,
	TypeTransferOut:   true,
	TypeTransferIn:    true,
	TypeReturnRestock: true,
}

// Transaction represents inventory_transaction table: one immutable ledger
// entry per stock-quantity change. Entries are append-only: no update or
// delete path exists anywhere in the codebase. A transfer is a matched
// transfer_out/transfer_in pair sharing ReferenceID.
type Transaction struct {
	TransactionID uint           `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id,omitempty"`
	Type          string         `gorm:"column:type;type:varchar(32);not null;index" json:"type"`
	Quantity      int            `gorm:"column:quantity;not null" json:"quantity"`
	ProductID     uint           `gorm:"column:product_id;not null;index:idx_txn_pair" json:"product_id"`
	WarehouseID   uint           `gorm:"column:warehouse_id;not null;index:idx_txn_pair;index" json:"warehouse_id"`
	ReferenceID   string         `gorm:"column:reference_id;type:varchar(64);index" json:"reference_id,omitempty"`
	Meta          datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "inventory_transaction"
}

// TransactionDraft is the input for appending a ledger entry. The id and
// timestamp are server-assigned.
type TransactionDraft struct {
	Type        string
	Quantity    int
	ProductID   uint
	WarehouseID uint
	ReferenceID string
	Meta        datatypes.JSON
}
