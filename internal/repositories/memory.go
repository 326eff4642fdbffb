package repositories

import (
	"fmt"
	"sync"

	"kassa/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products reference VAT classes held by the paired MemoryVatClassRepository.
type MemoryProductRepository struct {
	products map[int64]models.Product
	vats     *MemoryVatClassRepository
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository(vats *MemoryVatClassRepository) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
		vats:     vats,
	}
}

// FindByBarcode returns a copy of the product with this barcode.
func (r *MemoryProductRepository) FindByBarcode(barcode int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[barcode]
	if !ok {
		return nil, ErrProductNotFound
	}
	if vat, err := r.vats.GetByID(product.VatClassID); err == nil {
		product.VatClass = vat
	}
	return &product, nil
}

func (r *MemoryProductRepository) ExistsByBarcode(barcode int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[barcode]
	return ok, nil
}

// Save stores the product, rejecting barcodes that are already taken.
func (r *MemoryProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.Barcode]; ok {
		return ErrDuplicateBarcode
	}
	if _, err := r.vats.GetByID(product.VatClassID); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.nextID++
	product.ID = r.nextID
	stored := *product
	stored.VatClass = nil
	r.products[product.Barcode] = stored
	return nil
}

// MemoryVatClassRepository is an in-memory implementation of VatClassRepository.
type MemoryVatClassRepository struct {
	vats map[uint]models.VatClass
	mu   sync.RWMutex
}

// NewMemoryVatClassRepository creates a repository holding the given classes.
func NewMemoryVatClassRepository(vats ...models.VatClass) *MemoryVatClassRepository {
	r := &MemoryVatClassRepository{vats: make(map[uint]models.VatClass, len(vats))}
	for _, vat := range vats {
		r.vats[vat.ID] = vat
	}
	return r
}

func (r *MemoryVatClassRepository) GetByID(id uint) (*models.VatClass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vat, ok := r.vats[id]
	if !ok {
		return nil, ErrVatClassNotFound
	}
	return &vat, nil
}

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("create user %s: %w", user.Username, ErrUsernameTaken)
	}
	user.ID = uint(len(r.users) + 1)
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
