package repositories

import (
	"errors"
	"fmt"

	"kassa/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindByBarcode retrieves the product with exactly this barcode, VAT class included.
func (r *GORMProductRepository) FindByBarcode(barcode int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("VatClass").First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by barcode %d: %w", barcode, err)
	}
	return &product, nil
}

// ExistsByBarcode reports whether a product with this barcode is persisted.
func (r *GORMProductRepository) ExistsByBarcode(barcode int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count products with barcode %d: %w", barcode, err)
	}
	return count > 0, nil
}

// Save inserts the product in its own transaction.
func (r *GORMProductRepository) Save(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("VatClass").Create(product).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateBarcode
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
