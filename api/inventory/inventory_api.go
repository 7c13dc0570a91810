package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/api"
	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

// RegisterInventoryRoutes mounts the inventory surface on the authenticated
// group. The operations service is constructed once per registration; the
// caller owns the DB lifecycle.
func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := inventoryService.New(db, inventoryService.DefaultConfig()).
		WithSearch(inventoryService.NewSearchService())
	RegisterInventoryRoutesWithService(apiGroup, db, svc)
}

// RegisterInventoryRoutesWithService mounts routes against an explicit
// service (tests inject their own).
func RegisterInventoryRoutesWithService(apiGroup *echo.Group, db *gorm.DB, svc *inventoryService.Service) {
	g := apiGroup.Group("/inventory")

	g.GET("/warehouses", func(c echo.Context) error {
		rows, err := inventoryRepo.NewWarehouseRepository(db).List()
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.POST("/warehouses", func(c echo.Context) error {
		var body CreateWarehouseRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Name == "" || body.FulfillmentCenterID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and fulfillmentCenterId are required"})
		}
		w := inventoryEntity.Warehouse{
			FulfillmentCenterID: body.FulfillmentCenterID,
			Name:                body.Name,
			Location:            body.Location,
		}
		if err := inventoryRepo.NewWarehouseRepository(db).Create(&w); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, w)
	})

	g.GET("/stock", func(c echo.Context) error {
		warehouseID, err := optionalUintParam(c, "warehouseId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid warehouseId"})
		}
		rows, err := listStockWithProducts(db, warehouseID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/transactions", func(c echo.Context) error {
		warehouseID, err := optionalUintParam(c, "warehouseId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid warehouseId"})
		}
		filter := inventoryRepo.ListFilter{Limit: 100}
		if warehouseID != nil {
			filter.WarehouseID = *warehouseID
		}
		if limit := c.QueryParam("limit"); limit != "" {
			if n, err := strconv.Atoi(limit); err == nil && n > 0 {
				filter.Limit = n
			}
		}
		rows, err := inventoryRepo.NewLedgerRepository(db).List(filter)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/transactions/search", func(c echo.Context) error {
		query := c.QueryParam("q")
		if query == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
		}
		search := svc.Search()
		if search == nil || !search.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search not configured"})
		}
		hits, err := search.Search(c.Request().Context(), query, 50)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"hits": hits})
	})

	g.POST("/adjust", func(c echo.Context) error {
		var body AdjustRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		level, err := svc.AdjustStock(body.ProductID, body.WarehouseID, body.Quantity, body.Reason)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, level)
	})

	g.POST("/transfer", func(c echo.Context) error {
		var body TransferRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		referenceID, err := svc.TransferStock(body.ProductID, body.FromWarehouseID, body.ToWarehouseID, body.Quantity, body.Reason)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"referenceId": referenceID})
	})

	g.POST("/reserve", func(c echo.Context) error {
		var body ReserveRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := svc.ReserveForOrder(body.OrderID, body.Items); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orderId": body.OrderID, "reserved": len(body.Items)})
	})

	g.POST("/release", func(c echo.Context) error {
		var body OrderRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.OrderID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId is required"})
		}
		if err := svc.ReleaseReservation(body.OrderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orderId": body.OrderID, "status": "released"})
	})

	g.POST("/fulfill", func(c echo.Context) error {
		var body OrderRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.OrderID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId is required"})
		}
		if err := svc.FulfillOrder(body.OrderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orderId": body.OrderID, "status": "fulfilled"})
	})

	g.POST("/receive", func(c echo.Context) error {
		var body ReceiveRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.PurchaseID == "" || body.WarehouseID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "purchaseId and warehouseId are required"})
		}
		if err := svc.ReceivePurchase(body.PurchaseID, body.WarehouseID, body.Items); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"purchaseId": body.PurchaseID, "received": len(body.Items)})
	})

	g.POST("/restock", func(c echo.Context) error {
		var body RestockRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.OrderID == "" || body.WarehouseID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId and warehouseId are required"})
		}
		if err := svc.RestockReturn(body.OrderID, body.WarehouseID, body.Items); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orderId": body.OrderID, "restocked": len(body.Items)})
	})

	g.GET("/dashboard", func(c echo.Context) error {
		warehouseID, err := optionalUintParam(c, "warehouseId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid warehouseId"})
		}
		report, err := svc.Dashboard(warehouseID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, report)
	})
}

// StockRow is a StockLevel joined with its product for list views.
type StockRow struct {
	StockLevelID     uint   `json:"stock_level_id"`
	ProductID        uint   `json:"product_id"`
	SKU              string `json:"sku"`
	ProductName      string `json:"product_name"`
	WarehouseID      uint   `json:"warehouse_id"`
	CurrentQuantity  int    `json:"current_quantity"`
	ReservedQuantity int    `json:"reserved_quantity"`
	AvailableToSell  int    `json:"available_to_sell"`
}

func listStockWithProducts(db *gorm.DB, warehouseID *uint) ([]StockRow, error) {
	q := db.Table("stock_level").
		Select(`stock_level.stock_level_id, stock_level.product_id, product.sku, product.name AS product_name,
			stock_level.warehouse_id, stock_level.current_quantity, stock_level.reserved_quantity,
			stock_level.current_quantity - stock_level.reserved_quantity AS available_to_sell`).
		Joins("JOIN product ON product.product_id = stock_level.product_id").
		Order("stock_level.product_id, stock_level.warehouse_id")
	if warehouseID != nil {
		q = q.Where("stock_level.warehouse_id = ?", *warehouseID)
	}
	var rows []StockRow
	err := q.Scan(&rows).Error
	if rows == nil {
		rows = []StockRow{}
	}
	return rows, err
}

func optionalUintParam(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	v := uint(n)
	return &v, nil
}

// jsonError maps the inventory error taxonomy onto HTTP status codes.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventoryEntity.ErrProductNotFound),
		errors.Is(err, inventoryEntity.ErrWarehouseNotFound),
		errors.Is(err, inventoryEntity.ErrCenterNotFound),
		errors.Is(err, inventoryEntity.ErrNoActiveReservation):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, inventoryEntity.ErrZeroQuantity),
		errors.Is(err, inventoryEntity.ErrUnknownType),
		errors.Is(err, inventoryEntity.ErrInvalidTransfer),
		errors.Is(err, inventoryEntity.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventoryEntity.ErrInsufficientStock),
		errors.Is(err, inventoryEntity.ErrWarehouseInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, inventoryEntity.ErrConcurrencyConflict):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
