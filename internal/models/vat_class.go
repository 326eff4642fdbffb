package models

import "github.com/shopspring/decimal"

// VatClass is reference data carrying a VAT percentage.
type VatClass struct {
	ID      uint            `json:"id" gorm:"primaryKey"`
	Percent decimal.Decimal `json:"percent" gorm:"type:decimal(5,2);not null"`
}
