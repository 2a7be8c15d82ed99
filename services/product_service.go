package services

import (
	"context"
	"strings"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"go.uber.org/zap"
)

// A nil viewer is an anonymous visitor.
type ProductService interface {
	List(ctx context.Context, viewer *models.Principal, params models.ListParams) ([]models.Product, int64, error)
	ListByCategory(ctx context.Context, viewer *models.Principal, category string, params models.ListParams) ([]models.Product, int64, error)
	Search(ctx context.Context, viewer *models.Principal, query string, params models.ListParams) ([]models.Product, int64, error)
	Get(ctx context.Context, viewer *models.Principal, id uint) (*models.Product, error)
	GetByProductID(ctx context.Context, productID string) (*models.Product, error)
	Create(ctx context.Context, principal models.Principal, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, principal models.Principal, id uint, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, principal models.Principal, id uint) error
}

type productService struct {
	productRepo repositories.ProductRepository
	cache       ProductCache
}

func NewProductService(productRepo repositories.ProductRepository, cache ProductCache) ProductService {
	if cache == nil {
		cache = NoopProductCache{}
	}
	return &productService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// listScope resolves visibility for a listing. includeInactive is ignored for
// anonymous callers.
func listScope(viewer *models.Principal, includeInactive bool) models.Scope {
	scope := models.ScopeFor(viewer)
	if scope.IsPublic() {
		return scope
	}
	return scope.WithInactive(includeInactive)
}

func (s *productService) List(ctx context.Context, viewer *models.Principal, params models.ListParams) ([]models.Product, int64, error) {
	params.Normalize()
	params.Category = strings.TrimSpace(params.Category)
	params.Search = strings.TrimSpace(params.Search)

	scope := listScope(viewer, params.IncludeInactive)
	if !scope.IsPublic() {
		return s.productRepo.List(ctx, scope, params)
	}

	params.IncludeInactive = false
	cached, version, ok := s.cache.GetList(ctx, params)
	if ok {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.productRepo.List(ctx, scope, params)
	if err != nil {
		return nil, 0, err
	}
	s.cache.SetList(ctx, version, params, CachedProductList{Items: items, Total: total})
	return items, total, nil
}

func (s *productService) ListByCategory(ctx context.Context, viewer *models.Principal, category string, params models.ListParams) ([]models.Product, int64, error) {
	params.Category = category
	return s.List(ctx, viewer, params)
}

func (s *productService) Search(ctx context.Context, viewer *models.Principal, query string, params models.ListParams) ([]models.Product, int64, error) {
	params.Search = query
	return s.List(ctx, viewer, params)
}

func (s *productService) Get(ctx context.Context, viewer *models.Principal, id uint) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id, models.ScopeFor(viewer))
}

func (s *productService) GetByProductID(ctx context.Context, productID string) (*models.Product, error) {
	return s.productRepo.GetActiveByProductID(ctx, strings.ToUpper(strings.TrimSpace(productID)))
}

func (s *productService) Create(ctx context.Context, principal models.Principal, req models.CreateProductRequest) (*models.Product, error) {
	category := models.Category(strings.ToLower(strings.TrimSpace(req.Category)))
	if !category.Valid() {
		return nil, models.ErrorValidation{Message: "unknown category " + req.Category}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	product := &models.Product{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        strings.TrimSpace(req.Price),
		Currency:     currency,
		Category:     category,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
		PurchaseLink: req.PurchaseLink,
		Status:       models.StatusActive,
		OwnerID:      principal.UserID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	logger.Info(ctx, "product created",
		zap.String("product_id", product.ProductID),
		zap.String("owner_id", product.OwnerID))
	return product, nil
}

func (s *productService) Update(ctx context.Context, principal models.Principal, id uint, req models.UpdateProductRequest) (*models.Product, error) {
	scope := models.ScopeFor(&principal)

	current, err := s.productRepo.GetByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if req.Category != nil && models.Category(*req.Category) != current.Category {
		return nil, models.ErrorValidation{Message: "category cannot be changed once the product id is assigned"}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		updates["price"] = strings.TrimSpace(*req.Price)
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.PurchaseLink != nil {
		updates["purchase_link"] = *req.PurchaseLink
	}
	if req.Status != nil {
		status, err := models.ParseLifecycleStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return current, nil
	}

	product, err := s.productRepo.Update(ctx, id, scope, updates)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, principal models.Principal, id uint) error {
	if err := s.productRepo.SoftDelete(ctx, id, models.ScopeFor(&principal)); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	logger.Info(ctx, "product deactivated", zap.Uint("id", id), zap.String("by", principal.UserID))
	return nil
}
