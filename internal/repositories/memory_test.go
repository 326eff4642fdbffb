package repositories_test

import (
	"testing"

	"kassa/internal/models"
	"kassa/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository(t *testing.T) {
	vats := repositories.NewMemoryVatClassRepository(models.VatClass{ID: 21, Percent: decimal.NewFromInt(21)})
	repo := repositories.NewMemoryProductRepository(vats)

	_, err := repo.FindByBarcode(1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	product := &models.Product{Name: "Bread", Barcode: 1, Cost: decimal.RequireFromString("2.10"), VatClassID: 21}
	require.NoError(t, repo.Save(product))
	assert.Equal(t, uint(1), product.ID)

	found, err := repo.FindByBarcode(1)
	require.NoError(t, err)
	assert.Equal(t, "Bread", found.Name)
	require.NotNil(t, found.VatClass)
	assert.Equal(t, "21", found.VatClass.Percent.String())

	exists, err := repo.ExistsByBarcode(1)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Save(&models.Product{Name: "Bread again", Barcode: 1, VatClassID: 21})
	assert.ErrorIs(t, err, repositories.ErrDuplicateBarcode)

	err = repo.Save(&models.Product{Name: "Untaxed", Barcode: 2, VatClassID: 7})
	assert.ErrorIs(t, err, repositories.ErrVatClassNotFound)
}

func TestMemoryUserRepository(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	require.NoError(t, repo.Create(&models.User{Username: "admin", Role: models.RoleAdmin}))
	assert.ErrorIs(t, repo.Create(&models.User{Username: "admin"}), repositories.ErrUsernameTaken)

	user, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
