package product

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
	productEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/product"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Get returns a product by id.
func (r *ProductRepository) Get(id uint) (*productEntity.Product, error) {
	var p productEntity.Product
	if err := r.db.First(&p, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventoryEntity.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBySKU returns a product by SKU.
func (r *ProductRepository) GetBySKU(sku string) (*productEntity.Product, error) {
	var p productEntity.Product
	if err := r.db.First(&p, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventoryEntity.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a product row exists.
func (r *ProductRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&productEntity.Product{}).Where("product_id = ?", id).Count(&count).Error
	return count > 0, err
}

// ByIDs fetches products keyed by id.
func (r *ProductRepository) ByIDs(ids []uint) (map[uint]productEntity.Product, error) {
	out := make(map[uint]productEntity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []productEntity.Product
	if err := r.db.Where("product_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ProductID] = p
	}
	return out, nil
}

// RefreshStockLevel recomputes the denormalized product stock figure from
// stock_level sums. Never written any other way; it is a read cache over
// the multi-warehouse projection.
func (r *ProductRepository) RefreshStockLevel(productID uint) error {
	return r.db.Exec(`UPDATE product SET stock_level = (
		SELECT COALESCE(SUM(current_quantity), 0) FROM stock_level WHERE stock_level.product_id = product.product_id
	) WHERE product_id = ?`, productID).Error
}
