package database

import (
	"fmt"

	"kassa/internal/fixtures"
	"kassa/internal/models"
	"kassa/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoadFixtures purges every table and loads the seed dataset in a single
// transaction, so the result does not depend on prior state.
func LoadFixtures(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := purge(tx); err != nil {
			return err
		}

		vats := fixtures.VatClasses()
		if err := tx.Create(&vats).Error; err != nil {
			return fmt.Errorf("failed to load vat classes: %w", err)
		}

		productIDs := make(map[int64]uint)
		for _, p := range fixtures.Products() {
			product := models.Product{Name: p.Name, Barcode: p.Barcode, Cost: p.Cost, VatClassID: p.VatClass}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to load product %d: %w", p.Barcode, err)
			}
			productIDs[p.Barcode] = product.ID
		}

		users := repositories.NewGORMUserRepository(tx)
		for _, u := range fixtures.Users() {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
			if err != nil {
				return fmt.Errorf("failed to hash password of %s: %w", u.Username, err)
			}
			user := models.User{Username: u.Username, Password: string(hash), Role: u.Role}
			if err := users.Create(&user); err != nil {
				return fmt.Errorf("failed to load user %s: %w", u.Username, err)
			}
		}

		for name, r := range fixtures.Receipts() {
			receipt := models.Receipt{UUID: r.UUID, Status: r.Status}
			for _, barcode := range r.Items {
				id, ok := productIDs[barcode]
				if !ok {
					return fmt.Errorf("receipt %s references unknown product %d", name, barcode)
				}
				receipt.Items = append(receipt.Items, models.ReceiptItem{ProductID: id, Quantity: 1})
			}
			if err := tx.Create(&receipt).Error; err != nil {
				return fmt.Errorf("failed to load receipt %s: %w", name, err)
			}
		}
		return nil
	})
}

func purge(tx *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
			return fmt.Errorf("failed to purge %T: %w", all[i], err)
		}
	}
	return nil
}
