package inventory

import (
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

// Tagged request bodies, one per mutation. Validation happens here before
// anything reaches the service layer.

type CreateWarehouseRequest struct {
	Name                string `json:"name"`
	Location            string `json:"location,omitempty"`
	FulfillmentCenterID uint   `json:"fulfillmentCenterId"`
}

type AdjustRequest struct {
	ProductID   uint   `json:"productId"`
	WarehouseID uint   `json:"warehouseId"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

type TransferRequest struct {
	ProductID       uint   `json:"productId"`
	FromWarehouseID uint   `json:"fromWarehouseId"`
	ToWarehouseID   uint   `json:"toWarehouseId"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
}

type ReserveRequest struct {
	OrderID string                             `json:"orderId"`
	Items   []inventoryService.ReservationItem `json:"items"`
}

type OrderRequest struct {
	OrderID string `json:"orderId"`
}

type ReceiveRequest struct {
	PurchaseID  string                      `json:"purchaseId"`
	WarehouseID uint                        `json:"warehouseId"`
	Items       []inventoryService.LineItem `json:"items"`
}

type RestockRequest struct {
	OrderID     string                      `json:"orderId"`
	WarehouseID uint                        `json:"warehouseId"`
	Items       []inventoryService.LineItem `json:"items"`
}
