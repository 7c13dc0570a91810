package graphqlserver

import (
	"context"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/graphql"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB  *gorm.DB
	Svc *inventoryService.Service
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB, svc: r.Svc}
}

// QueryResolver implements the read-only Query fields.
type QueryResolver struct {
	db  *gorm.DB
	svc *inventoryService.Service
}

// --- GraphQL models (field resolvers) ---

type Warehouse struct {
	WarehouseID         int32
	FulfillmentCenterID int32
	Name                string
	Location            *string
}

type StockLevel struct {
	ProductID        int32
	WarehouseID      int32
	CurrentQuantity  int32
	ReservedQuantity int32
	AvailableToSell  int32
}

type InventoryTransaction struct {
	TransactionID int32
	Type          string
	Quantity      int32
	ProductID     int32
	WarehouseID   int32
	ReferenceID   *string
	CreatedAt     string
}

type ProductStatus struct {
	ProductID        int32
	SKU              string
	Name             string
	CurrentQuantity  int32
	ReservedQuantity int32
	AvailableToSell  int32
	ReorderPoint     int32
	Status           string
}

func (r *QueryResolver) Warehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := inventoryRepo.NewWarehouseRepository(r.db).List()
	if err != nil {
		return nil, err
	}
	out := make([]Warehouse, 0, len(rows))
	for _, w := range rows {
		var location *string
		if w.Location != "" {
			l := w.Location
			location = &l
		}
		out = append(out, Warehouse{
			WarehouseID:         int32(w.WarehouseID),
			FulfillmentCenterID: int32(w.FulfillmentCenterID),
			Name:                w.Name,
			Location:            location,
		})
	}
	return out, nil
}

type StockLevelsArgs struct {
	ProductID   *int32
	WarehouseID *int32
}

func (r *QueryResolver) StockLevels(ctx context.Context, args StockLevelsArgs) ([]StockLevel, error) {
	var productID, warehouseID *uint
	if args.ProductID != nil {
		v := uint(*args.ProductID)
		productID = &v
	}
	if args.WarehouseID != nil {
		v := uint(*args.WarehouseID)
		warehouseID = &v
	}
	rows, err := inventoryService.NewProjector(r.db).Query(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]StockLevel, 0, len(rows))
	for _, s := range rows {
		out = append(out, StockLevel{
			ProductID:        int32(s.ProductID),
			WarehouseID:      int32(s.WarehouseID),
			CurrentQuantity:  int32(s.CurrentQuantity),
			ReservedQuantity: int32(s.ReservedQuantity),
			AvailableToSell:  int32(s.AvailableToSell()),
		})
	}
	return out, nil
}

type TransactionsArgs struct {
	WarehouseID *int32
	Limit       *int32
}

func (r *QueryResolver) Transactions(ctx context.Context, args TransactionsArgs) ([]InventoryTransaction, error) {
	filter := inventoryRepo.ListFilter{Limit: 50}
	if args.WarehouseID != nil {
		filter.WarehouseID = uint(*args.WarehouseID)
	}
	if args.Limit != nil && *args.Limit > 0 {
		filter.Limit = int(*args.Limit)
	}
	rows, err := inventoryRepo.NewLedgerRepository(r.db).List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryTransaction, 0, len(rows))
	for _, t := range rows {
		var referenceID *string
		if t.ReferenceID != "" {
			ref := t.ReferenceID
			referenceID = &ref
		}
		out = append(out, InventoryTransaction{
			TransactionID: int32(t.TransactionID),
			Type:          t.Type,
			Quantity:      int32(t.Quantity),
			ProductID:     int32(t.ProductID),
			WarehouseID:   int32(t.WarehouseID),
			ReferenceID:   referenceID,
			CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

type StockStatusArgs struct {
	ProductID int32
}

func (r *QueryResolver) StockStatus(ctx context.Context, args StockStatusArgs) (*ProductStatus, error) {
	st, err := r.svc.ProductStatusByID(uint(args.ProductID))
	if err != nil {
		return nil, err
	}
	return &ProductStatus{
		ProductID:        int32(st.ProductID),
		SKU:              st.SKU,
		Name:             st.Name,
		CurrentQuantity:  int32(st.CurrentQuantity),
		ReservedQuantity: int32(st.ReservedQuantity),
		AvailableToSell:  int32(st.AvailableToSell),
		ReorderPoint:     int32(st.ReorderPoint),
		Status:           st.Status,
	}, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	svc := inventoryService.New(db, inventoryService.DefaultConfig())
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db, Svc: svc}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
