package repositories

import (
	"errors"
	"fmt"

	"kassa/internal/models"

	"gorm.io/gorm"
)

// GORMVatClassRepository is a GORM implementation of VatClassRepository.
type GORMVatClassRepository struct {
	db *gorm.DB
}

func NewGORMVatClassRepository(db *gorm.DB) *GORMVatClassRepository {
	return &GORMVatClassRepository{db: db}
}

func (r *GORMVatClassRepository) GetByID(id uint) (*models.VatClass, error) {
	var vat models.VatClass
	if err := r.db.First(&vat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVatClassNotFound
		}
		return nil, fmt.Errorf("failed to get vat class %d: %w", id, err)
	}
	return &vat, nil
}
