package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReceiptStatusUnfinished = "unfinished"
	ReceiptStatusFinished   = "finished"
)

// ReceiptItem is a single product line on a receipt.
type ReceiptItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	ReceiptID uint     `json:"-" gorm:"not null;index"`
	ProductID uint     `json:"-" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null;default:1"`
}

// Receipt represents a (possibly unfinished) sale at a cash register.
type Receipt struct {
	ID        uint          `json:"-" gorm:"primaryKey"`
	UUID      string        `json:"uuid" gorm:"uniqueIndex;type:varchar(36);not null"`
	Status    string        `json:"status" gorm:"type:varchar(20);not null"`
	Items     []ReceiptItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided.
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReceiptStatusUnfinished
	}
	return nil
}

