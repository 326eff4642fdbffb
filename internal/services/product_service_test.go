package services_test

import (
	"errors"
	"fmt"
	"testing"

	"kassa/internal/models"
	"kassa/internal/repositories"
	"kassa/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByBarcode(barcode int64) (*models.Product, error) {
	args := m.Called(barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(barcode int64) (bool, error) {
	args := m.Called(barcode)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockVatClassRepository is a mock implementation of repositories.VatClassRepository
type MockVatClassRepository struct {
	mock.Mock
}

func (m *MockVatClassRepository) GetByID(id uint) (*models.VatClass, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VatClass), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:     ptr("Test Product"),
		Barcode:  ptr(int64(9999999999999)),
		Cost:     ptr(decimal.RequireFromString("19.75")),
		VatClass: ptr(uint(21)),
	}
}

var vat21 = &models.VatClass{ID: 21, Percent: decimal.NewFromInt(21)}

func newProductService(t *testing.T) (*services.ProductService, *MockProductRepository, *MockVatClassRepository, *MockEventPublisher) {
	repo := new(MockProductRepository)
	vats := new(MockVatClassRepository)
	publisher := new(MockEventPublisher)
	return services.NewProductService(repo, vats, publisher, zaptest.NewLogger(t)), repo, vats, publisher
}

func TestProductService_CreateProduct(t *testing.T) {
	service, repo, vats, publisher := newProductService(t)

	repo.On("ExistsByBarcode", int64(9999999999999)).Return(false, nil).Once()
	vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
	repo.On("Save", mock.MatchedBy(func(p *models.Product) bool {
		return p.Barcode == 9999999999999 && p.VatClassID == 21 && p.Cost.String() == "19.75"
	})).Return(nil).Once()
	publisher.On("PublishProductCreated", mock.MatchedBy(func(e map[string]interface{}) bool {
		return e["event"] == "product.created" && e["barcode"] == int64(9999999999999)
	})).Return(nil).Once()

	product, err := service.CreateProduct(validInput())
	require.NoError(t, err)
	assert.Equal(t, "Test Product", product.Name)
	assert.Equal(t, "21", product.VatClass.Percent.String())
	repo.AssertExpectations(t)
	vats.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	service, repo, vats, publisher := newProductService(t)

	repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
	vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
	repo.On("Save", mock.Anything).Return(nil).Once()
	publisher.On("PublishProductCreated", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	_, err := service.CreateProduct(validInput())
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProduct_WithoutPublisher(t *testing.T) {
	repo := new(MockProductRepository)
	vats := new(MockVatClassRepository)
	service := services.NewProductService(repo, vats, nil, zaptest.NewLogger(t))

	repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
	vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
	repo.On("Save", mock.Anything).Return(nil).Once()

	_, err := service.CreateProduct(validInput())
	assert.NoError(t, err)
}

func TestProductService_CreateProduct_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *services.ProductInput)
		field  string
	}{
		{"missing name", func(in *services.ProductInput) { in.Name = nil }, "name"},
		{"empty name", func(in *services.ProductInput) { in.Name = ptr("") }, "name"},
		{"missing barcode", func(in *services.ProductInput) { in.Barcode = nil }, "barcode"},
		{"negative barcode", func(in *services.ProductInput) { in.Barcode = ptr(int64(-5)) }, "barcode"},
		{"missing cost", func(in *services.ProductInput) { in.Cost = nil }, "cost"},
		{"negative cost", func(in *services.ProductInput) { in.Cost = ptr(decimal.RequireFromString("-0.01")) }, "cost"},
		{"missing vat class", func(in *services.ProductInput) { in.VatClass = nil }, "vatClass"},
		{"cost with three decimals", func(in *services.ProductInput) { in.Cost = ptr(decimal.RequireFromString("19.999")) }, "cost"},
		{"cost too precise", func(in *services.ProductInput) { in.Cost = ptr(decimal.RequireFromString("0.12345678901234567891")) }, "cost"},
		{"cost too large", func(in *services.ProductInput) { in.Cost = ptr(decimal.RequireFromString("100000000")) }, "cost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, vats, _ := newProductService(t)
			repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Maybe()
			vats.On("GetByID", mock.Anything).Return(vat21, nil).Maybe()

			input := validInput()
			tt.mutate(&input)
			product, err := service.CreateProduct(input)

			assert.Nil(t, product)
			var violations services.ValidationErrors
			require.ErrorAs(t, err, &violations)
			assert.Contains(t, violations, tt.field)
			assert.Len(t, violations, 1)
			repo.AssertNotCalled(t, "Save", mock.Anything)
		})
	}
}

func TestProductService_CreateProduct_ZeroCostIsValid(t *testing.T) {
	service, repo, vats, publisher := newProductService(t)
	repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
	vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
	repo.On("Save", mock.Anything).Return(nil).Once()
	publisher.On("PublishProductCreated", mock.Anything).Return(nil).Once()

	input := validInput()
	input.Cost = ptr(decimal.Zero)
	_, err := service.CreateProduct(input)
	assert.NoError(t, err)
}

func TestProductService_CreateProduct_CostBounds(t *testing.T) {
	for _, cost := range []string{"99999999.99", "0.01", "19.750"} {
		t.Run(cost, func(t *testing.T) {
			service, repo, vats, publisher := newProductService(t)
			repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
			vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
			repo.On("Save", mock.Anything).Return(nil).Once()
			publisher.On("PublishProductCreated", mock.Anything).Return(nil).Once()

			input := validInput()
			input.Cost = ptr(decimal.RequireFromString(cost))
			product, err := service.CreateProduct(input)
			require.NoError(t, err)
			assert.True(t, product.Cost.Equal(decimal.RequireFromString(cost)))
		})
	}
}

func TestProductService_CreateProduct_KeepsVatClassApartFromPercent(t *testing.T) {
	service, repo, vats, publisher := newProductService(t)
	reduced := &models.VatClass{ID: 3, Percent: decimal.NewFromInt(21)}

	repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
	vats.On("GetByID", uint(3)).Return(reduced, nil).Once()
	repo.On("Save", mock.MatchedBy(func(p *models.Product) bool { return p.VatClassID == 3 })).Return(nil).Once()
	publisher.On("PublishProductCreated", mock.Anything).Return(nil).Once()

	input := validInput()
	input.VatClass = ptr(uint(3))
	product, err := service.CreateProduct(input)
	require.NoError(t, err)
	assert.Equal(t, uint(3), product.VatClassID)
	assert.Equal(t, "21", product.VatClass.Percent.String())
	repo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ReferenceChecks(t *testing.T) {
	service, repo, vats, _ := newProductService(t)

	repo.On("ExistsByBarcode", int64(9999999999999)).Return(true, nil).Once()
	vats.On("GetByID", uint(21)).Return(nil, repositories.ErrVatClassNotFound).Once()

	_, err := service.CreateProduct(validInput())
	var violations services.ValidationErrors
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, "This value is already used.", violations["barcode"])
	assert.Equal(t, "This value is not valid.", violations["vatClass"])
	assert.Contains(t, err.Error(), "barcode: This value is already used.")
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestProductService_CreateProduct_DuplicateOnWrite(t *testing.T) {
	service, repo, vats, publisher := newProductService(t)

	repo.On("ExistsByBarcode", mock.Anything).Return(false, nil).Once()
	vats.On("GetByID", uint(21)).Return(vat21, nil).Once()
	repo.On("Save", mock.Anything).Return(repositories.ErrDuplicateBarcode).Once()

	_, err := service.CreateProduct(validInput())
	assert.ErrorIs(t, err, repositories.ErrDuplicateBarcode)
	publisher.AssertNotCalled(t, "PublishProductCreated", mock.Anything)
}

func TestProductService_CreateProduct_RepositoryFailure(t *testing.T) {
	service, repo, _, _ := newProductService(t)

	repo.On("ExistsByBarcode", mock.Anything).Return(false, fmt.Errorf("database error")).Once()
	_, err := service.CreateProduct(validInput())
	assert.ErrorContains(t, err, "database error")
	var violations services.ValidationErrors
	assert.False(t, errors.As(err, &violations))
}

func TestProductService_GetProductByBarcode(t *testing.T) {
	service, repo, _, _ := newProductService(t)

	expected := &models.Product{Name: "Test Product 1", Barcode: 1111111111111, VatClass: vat21}
	repo.On("FindByBarcode", int64(1111111111111)).Return(expected, nil).Once()
	product, err := service.GetProductByBarcode(1111111111111)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	// absence is not an error
	repo.On("FindByBarcode", int64(42)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByBarcode(42)
	assert.NoError(t, err)
	assert.Nil(t, product)

	repo.On("FindByBarcode", int64(43)).Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.GetProductByBarcode(43)
	assert.Error(t, err)
	repo.AssertExpectations(t)
}
