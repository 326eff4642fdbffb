package repositories_test

import (
	"path/filepath"
	"testing"

	"kassa/internal/config"
	"kassa/internal/database"
	"kassa/internal/fixtures"
	"kassa/internal/models"
	"kassa/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "repo.db")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.CreateSchema(db))
	require.NoError(t, database.LoadFixtures(db))
	return db
}

func TestGORMProductRepository_FindByBarcode(t *testing.T) {
	repo := repositories.NewGORMProductRepository(setupDB(t))

	product, err := repo.FindByBarcode(fixtures.DummyProduct().Barcode)
	require.NoError(t, err)
	assert.Equal(t, "Test Product 1", product.Name)
	require.NotNil(t, product.VatClass)
	assert.Equal(t, "21", product.VatClass.Percent.String())

	product, err = repo.FindByBarcode(123)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
}

func TestGORMProductRepository_SaveAndExists(t *testing.T) {
	repo := repositories.NewGORMProductRepository(setupDB(t))

	exists, err := repo.ExistsByBarcode(555)
	require.NoError(t, err)
	assert.False(t, exists)

	product := &models.Product{Name: "Soap", Barcode: 555, Cost: decimal.RequireFromString("1.50"), VatClassID: 6}
	require.NoError(t, repo.Save(product))
	assert.NotZero(t, product.ID)

	exists, err = repo.ExistsByBarcode(555)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGORMProductRepository_SaveDuplicateBarcode(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMProductRepository(db)

	dup := &models.Product{Name: "Copy", Barcode: fixtures.DummyProduct().Barcode, Cost: decimal.NewFromInt(1), VatClassID: 6}
	err := repo.Save(dup)
	assert.ErrorIs(t, err, repositories.ErrDuplicateBarcode)

	var count int64
	db.Model(&models.Product{}).Where("barcode = ?", dup.Barcode).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGORMVatClassRepository_GetByID(t *testing.T) {
	repo := repositories.NewGORMVatClassRepository(setupDB(t))

	vat, err := repo.GetByID(6)
	require.NoError(t, err)
	assert.Equal(t, "6", vat.Percent.String())

	_, err = repo.GetByID(99)
	assert.ErrorIs(t, err, repositories.ErrVatClassNotFound)
}

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	user, err := repo.GetByUsername("cash_register")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCashRegister, user.Role)

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	require.NoError(t, repo.Create(&models.User{Username: "manager", Password: "x", Role: models.RoleAdmin}))
	assert.ErrorIs(t, repo.Create(&models.User{Username: "manager", Password: "y", Role: models.RoleAdmin}), repositories.ErrUsernameTaken)
}
