package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a priced, taxed inventory item identified by its barcode.
type Product struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"type:varchar(255);not null"`
	Barcode    int64           `json:"barcode" gorm:"uniqueIndex;not null"`
	Cost       decimal.Decimal `json:"cost" gorm:"type:decimal(10,2);not null"`
	VatClassID uint            `json:"-" gorm:"not null;index"`
	VatClass   *VatClass       `json:"-" gorm:"foreignKey:VatClassID"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}
