package services

import (
	"errors"
	"fmt"
	"time"

	"kassa/internal/models"
	"kassa/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxCost bounds the cost to what a decimal(10,2) column holds.
var maxCost = decimal.New(1, 8)

// ProductInput is the creation payload. Pointer fields tell a missing value
// apart from a zero one.
type ProductInput struct {
	Name     *string          `json:"name" validate:"required,min=1,max=255"`
	Barcode  *int64           `json:"barcode" validate:"required,gt=0"`
	Cost     *decimal.Decimal `json:"cost" validate:"required,gte=0"`
	VatClass *uint            `json:"vatClass" validate:"required"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	vatRepo   repositories.VatClassRepository
	validate  *validator.Validate
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, vatRepo repositories.VatClassRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		vatRepo:   vatRepo,
		validate:  NewValidator(),
		publisher: publisher,
		logger:    logger,
	}
}

// ValidateProduct checks the structural rules of input, then barcode
// uniqueness and VAT class existence. It returns the product to persist or
// ValidationErrors holding every violation found.
func (s *ProductService) ValidateProduct(input ProductInput) (*models.Product, error) {
	violations, err := collectViolations(s.validate.Struct(input))
	if err != nil {
		return nil, fmt.Errorf("failed to validate product: %w", err)
	}

	if _, failed := violations["cost"]; !failed {
		if msg := costViolation(*input.Cost); msg != "" {
			violations["cost"] = msg
		}
	}

	if _, failed := violations["barcode"]; !failed {
		exists, err := s.repo.ExistsByBarcode(*input.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			violations["barcode"] = "This value is already used."
		}
	}

	var vat *models.VatClass
	if _, failed := violations["vatClass"]; !failed {
		vat, err = s.vatRepo.GetByID(*input.VatClass)
		switch {
		case errors.Is(err, repositories.ErrVatClassNotFound):
			violations["vatClass"] = "This value is not valid."
		case err != nil:
			return nil, err
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &models.Product{
		Name:       *input.Name,
		Barcode:    *input.Barcode,
		Cost:       *input.Cost,
		VatClassID: vat.ID,
		VatClass:   vat,
	}, nil
}

// costViolation reports costs the store cannot hold exactly: more than two
// decimals or eight integer digits.
func costViolation(cost decimal.Decimal) string {
	if !cost.Equal(cost.Truncate(2)) {
		return "This value should have 2 decimals or less."
	}
	if cost.GreaterThanOrEqual(maxCost) {
		return fmt.Sprintf("This value should be less than %s.", maxCost)
	}
	return ""
}

// CreateProduct validates and persists a new product. A barcode collision at
// write time is reported as repositories.ErrDuplicateBarcode.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	product, err := s.ValidateProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(product); err != nil {
		return nil, err
	}

	s.publishCreated(product)
	return product, nil
}

// GetProductByBarcode returns the product with this barcode, or nil when
// there is none.
func (s *ProductService) GetProductByBarcode(barcode int64) (*models.Product, error) {
	product, err := s.repo.FindByBarcode(barcode)
	if errors.Is(err, repositories.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) publishCreated(product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"event":      "product.created",
		"barcode":    product.Barcode,
		"name":       product.Name,
		"cost":       product.Cost.String(),
		"vatClass":   product.VatClassID,
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishProductCreated(event); err != nil {
		s.logger.Warn("failed to publish product.created event",
			zap.Int64("barcode", product.Barcode), zap.Error(err))
	}
}
