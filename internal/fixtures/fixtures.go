// Package fixtures holds the seed dataset loaded before every integration
// test. The loader and the test assertions read the same values from here.
package fixtures

import (
	"kassa/internal/models"

	"github.com/shopspring/decimal"
)

// Product is the public shape of a seeded product. VatClass is both the id
// and the percentage of the seeded VAT class.
type Product struct {
	Name     string
	Barcode  int64
	Cost     decimal.Decimal
	VatClass uint
}

// Payload returns the product as a creation request body.
func (p Product) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":     p.Name,
		"barcode":  p.Barcode,
		"cost":     p.Cost.InexactFloat64(),
		"vatClass": p.VatClass,
	}
}

type Receipt struct {
	UUID   string
	Status string
	// Barcodes of the products on the receipt, one unit each.
	Items []int64
}

type User struct {
	Username string
	Password string
	Role     string
}

// VatClasses returns the seeded VAT classes.
func VatClasses() []models.VatClass {
	return []models.VatClass{
		{ID: 6, Percent: decimal.NewFromInt(6)},
		{ID: 21, Percent: decimal.NewFromInt(21)},
	}
}

// Products returns the products that exist in the test database.
func Products() []Product {
	return []Product{
		{Name: "Test Product 1", Barcode: 1111111111111, Cost: decimal.RequireFromString("11.11"), VatClass: 21},
		{Name: "Test Product 2", Barcode: 2222222222222, Cost: decimal.RequireFromString("22.22"), VatClass: 21},
		{Name: "Test Product 3", Barcode: 3333333333333, Cost: decimal.RequireFromString("33.33"), VatClass: 6},
	}
}

// DummyProduct returns a product that exists in the test database.
func DummyProduct() Product {
	return Products()[0]
}

// NewProduct returns a valid product that is not yet in the test database.
func NewProduct() Product {
	return Product{Name: "Test Product", Barcode: 9999999999999, Cost: decimal.RequireFromString("19.75"), VatClass: 6}
}

// Receipts returns the receipts that exist in the test database, by fixture name.
func Receipts() map[string]Receipt {
	return map[string]Receipt{
		"receipt_empty": {
			UUID:   "3f2e511d-f775-4324-9c38-17b93d8a55b0",
			Status: models.ReceiptStatusUnfinished,
		},
		"receipt_with_items": {
			UUID:   "7be3393b-3764-4f42-bf9b-f5b28a3f7c85",
			Status: models.ReceiptStatusUnfinished,
			Items:  []int64{1111111111111},
		},
	}
}

// Users returns the users that exist in the test database, by username.
func Users() map[string]User {
	return map[string]User{
		"admin": {
			Username: "admin",
			Password: "w35*M#iQ5bbTDH*I",
			Role:     models.RoleAdmin,
		},
		"cash_register": {
			Username: "cash_register",
			Password: "Dw57hi%RAqePdbgj",
			Role:     models.RoleCashRegister,
		},
	}
}
