package repositories

import (
	"context"
	"errors"
	"fmt"

	"phantoms-store/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint, scope models.Scope) (*models.Product, error)
	GetActiveByProductID(ctx context.Context, productID string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error)
	SoftDelete(ctx context.Context, id uint, scope models.Scope) error
}

type productRepository struct {
	db    *gorm.DB
	store ownedStore[models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{
		db: db,
		store: ownedStore[models.Product]{
			db:            db,
			entity:        "product",
			searchColumns: []string{"name", "product_id", "description"},
		},
	}
}

func (r *productRepository) List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
	return r.store.list(ctx, scope, params)
}

func (r *productRepository) GetByID(ctx context.Context, id uint, scope models.Scope) (*models.Product, error) {
	return r.store.get(ctx, id, scope)
}

func (r *productRepository) GetActiveByProductID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, models.StatusActive).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "product not found"}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

const nextSequenceSQL = `INSERT INTO product_sequences (prefix, last_value) VALUES (?, 1)
ON CONFLICT (prefix) DO UPDATE SET last_value = product_sequences.last_value + 1
RETURNING last_value`

// Create draws the next number for the product's prefix and inserts the row in
// one transaction, so concurrent creators serialize on the counter row and a
// failed insert gives its number back.
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, product.Category.Prefix())
		if err != nil {
			return fmt.Errorf("next product sequence: %w", err)
		}

		product.ProductID = models.FormatProductID(product.Category, seq)
		if product.Status == "" {
			product.Status = models.StatusActive
		}

		if err := tx.Create(product).Error; err != nil {
			if IsDuplicateKeyError(err) {
				return models.ErrorConflict{Message: fmt.Sprintf("product id %s already exists", product.ProductID)}
			}
			return err
		}
		return nil
	})
}

func nextSequence(tx *gorm.DB, prefix string) (int64, error) {
	var seq int64
	if err := tx.Raw(nextSequenceSQL, prefix).Scan(&seq).Error; err != nil {
		return 0, err
	}
	if seq < 1 {
		return 0, errors.New("sequence returned no value")
	}
	return seq, nil
}

func (r *productRepository) Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error) {
	return r.store.update(ctx, id, scope, updates)
}

func (r *productRepository) SoftDelete(ctx context.Context, id uint, scope models.Scope) error {
	return r.store.softDelete(ctx, id, scope)
}
