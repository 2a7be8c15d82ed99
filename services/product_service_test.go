package services

import (
	"context"
	"testing"

	"phantoms-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicListIsServedFromCache(t *testing.T) {
	calls := 0
	repo := &fakeProductRepo{
		ListFn: func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
			calls++
			assert.True(t, scope.IsPublic())
			assert.False(t, params.IncludeInactive)
			return []models.Product{{ProductID: "MCG-001"}}, 1, nil
		},
	}
	cache := newFakeCache()
	svc := NewProductService(repo, cache)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, total, err := svc.List(ctx, nil, models.ListParams{IncludeInactive: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "MCG-001", items[0].ProductID)
	}
	assert.Equal(t, 1, calls)
}

func TestPublicListDoesNotRepublishPageAfterInvalidation(t *testing.T) {
	cache := newFakeCache()
	calls := 0
	repo := &fakeProductRepo{
		ListFn: func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
			calls++
			if calls == 1 {
				// a delete commits while this page is being read
				cache.Invalidate(ctx)
				return []models.Product{{ProductID: "MCG-001"}}, 1, nil
			}
			return []models.Product{}, 0, nil
		},
	}
	svc := NewProductService(repo, cache)
	ctx := context.Background()

	items, _, err := svc.List(ctx, nil, models.ListParams{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, found := cache.current(models.ListParams{Page: 1, Limit: models.DefaultPageLimit})
	assert.False(t, found)

	items, total, err := svc.List(ctx, nil, models.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.Equal(t, 2, calls)
}

func TestOwnerListScopesAndBypassesCache(t *testing.T) {
	var got []models.Scope
	repo := &fakeProductRepo{
		ListFn: func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
			got = append(got, scope)
			return nil, 0, nil
		},
	}
	cache := newFakeCache()
	svc := NewProductService(repo, cache)
	ctx := context.Background()

	alice := seller("alice")
	root := superAdmin()

	_, _, err := svc.List(ctx, &alice, models.ListParams{})
	require.NoError(t, err)
	_, _, err = svc.List(ctx, &alice, models.ListParams{IncludeInactive: true})
	require.NoError(t, err)
	_, _, err = svc.List(ctx, &root, models.ListParams{})
	require.NoError(t, err)

	assert.Equal(t, []models.Scope{
		{OwnerID: "alice"},
		{OwnerID: "alice", IncludeInactive: true},
		{OwnerID: models.SuperAdminID, All: true},
	}, got)
	assert.Empty(t, cache.entries)
}

func TestListByCategoryAndSearchNormalizeParams(t *testing.T) {
	var got models.ListParams
	repo := &fakeProductRepo{
		ListFn: func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
			got = params
			return nil, 0, nil
		},
	}
	svc := NewProductService(repo, nil)

	_, _, err := svc.ListByCategory(context.Background(), nil, "bots", models.ListParams{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, "bots", got.Category)
	assert.Equal(t, models.MaxPageLimit, got.Limit)
	assert.Equal(t, 1, got.Page)

	_, _, err = svc.Search(context.Background(), nil, "  aimbot ", models.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "aimbot", got.Search)
	assert.Equal(t, models.DefaultPageLimit, got.Limit)
}

func TestCreateProductTakesOwnerFromPrincipal(t *testing.T) {
	var stored *models.Product
	repo := &fakeProductRepo{
		CreateFn: func(ctx context.Context, product *models.Product) error {
			product.ID = 7
			product.ProductID = models.FormatProductID(product.Category, 1)
			stored = product
			return nil
		},
	}
	cache := newFakeCache()
	svc := NewProductService(repo, cache)

	product, err := svc.Create(context.Background(), seller("alice"), models.CreateProductRequest{
		Name:     " Aim Panel ",
		Price:    "499.00",
		Category: "panels",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.OwnerID)
	assert.Equal(t, "Aim Panel", product.Name)
	assert.Equal(t, "INR", product.Currency)
	assert.Equal(t, models.StatusActive, product.Status)
	assert.Equal(t, "MCG-001", product.ProductID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUpdateProductRejectsCategoryChange(t *testing.T) {
	updated := false
	repo := &fakeProductRepo{
		GetByIDFn: func(ctx context.Context, id uint, scope models.Scope) (*models.Product, error) {
			return &models.Product{ID: id, Category: models.CategoryPanels, OwnerID: "alice"}, nil
		},
		UpdateFn: func(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error) {
			updated = true
			return nil, nil
		},
	}
	svc := NewProductService(repo, nil)

	bots := "bots"
	_, err := svc.Update(context.Background(), seller("alice"), 1, models.UpdateProductRequest{Category: &bots})
	assert.IsType(t, models.ErrorValidation{}, err)
	assert.False(t, updated)
}

func TestUpdateProductWhitelistsFieldsAndRestores(t *testing.T) {
	var gotScope models.Scope
	var gotUpdates map[string]interface{}
	repo := &fakeProductRepo{
		GetByIDFn: func(ctx context.Context, id uint, scope models.Scope) (*models.Product, error) {
			return &models.Product{ID: id, Category: models.CategoryBots, OwnerID: "alice", Status: models.StatusInactive}, nil
		},
		UpdateFn: func(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error) {
			gotScope = scope
			gotUpdates = updates
			return &models.Product{ID: id, Status: models.StatusActive}, nil
		},
	}
	cache := newFakeCache()
	svc := NewProductService(repo, cache)

	price := "10.5"
	active := "active"
	currency := "usd"
	_, err := svc.Update(context.Background(), seller("alice"), 3, models.UpdateProductRequest{Price: &price, Status: &active, Currency: &currency})
	require.NoError(t, err)

	assert.Equal(t, models.Scope{OwnerID: "alice"}, gotScope)
	assert.Equal(t, map[string]interface{}{
		"price":    "10.5",
		"status":   models.StatusActive,
		"currency": "USD",
	}, gotUpdates)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCrossOwnerAccessIsNotFound(t *testing.T) {
	notFound := models.ErrorNotFound{Message: "product not found"}
	repo := &fakeProductRepo{
		GetByIDFn: func(ctx context.Context, id uint, scope models.Scope) (*models.Product, error) {
			if scope.All || scope.OwnerID == "alice" {
				return &models.Product{ID: id, OwnerID: "alice"}, nil
			}
			return nil, notFound
		},
		SoftDeleteFn: func(ctx context.Context, id uint, scope models.Scope) error {
			if scope.All || scope.OwnerID == "alice" {
				return nil
			}
			return notFound
		},
	}
	svc := NewProductService(repo, nil)
	ctx := context.Background()
	mallory := seller("mallory")
	root := superAdmin()

	_, err := svc.Get(ctx, &mallory, 1)
	assert.Equal(t, notFound, err)
	assert.Equal(t, notFound, svc.Delete(ctx, mallory, 1))
	_, err = svc.Update(ctx, mallory, 1, models.UpdateProductRequest{})
	assert.Equal(t, notFound, err)

	_, err = svc.Get(ctx, &root, 1)
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, root, 1))
}
