package repositories

import (
	"errors"

	"kassa/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("a product with this barcode already exists")
	ErrVatClassNotFound = errors.New("vat class not found")
)

// ProductRepository defines the interface for product data access.
// Products are addressed by barcode, never by their surrogate id.
type ProductRepository interface {
	FindByBarcode(barcode int64) (*models.Product, error)
	ExistsByBarcode(barcode int64) (bool, error)
	Save(product *models.Product) error
}

// VatClassRepository resolves VAT classification reference data.
type VatClassRepository interface {
	GetByID(id uint) (*models.VatClass, error)
}
