package repositories

import (
	"context"

	"phantoms-store/models"

	"gorm.io/gorm"
)

type YoutubeResourceRepository interface {
	List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.YoutubeResource, int64, error)
	GetByID(ctx context.Context, id uint, scope models.Scope) (*models.YoutubeResource, error)
	Create(ctx context.Context, resource *models.YoutubeResource) error
	Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.YoutubeResource, error)
	SoftDelete(ctx context.Context, id uint, scope models.Scope) error
}

type youtubeResourceRepository struct {
	store ownedStore[models.YoutubeResource]
}

func NewYoutubeResourceRepository(db *gorm.DB) YoutubeResourceRepository {
	return &youtubeResourceRepository{
		store: ownedStore[models.YoutubeResource]{
			db:            db,
			entity:        "youtube resource",
			searchColumns: []string{"title", "description"},
		},
	}
}

func (r *youtubeResourceRepository) List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.YoutubeResource, int64, error) {
	return r.store.list(ctx, scope, params)
}

func (r *youtubeResourceRepository) GetByID(ctx context.Context, id uint, scope models.Scope) (*models.YoutubeResource, error) {
	return r.store.get(ctx, id, scope)
}

func (r *youtubeResourceRepository) Create(ctx context.Context, resource *models.YoutubeResource) error {
	if resource.Status == "" {
		resource.Status = models.StatusActive
	}
	return r.store.create(ctx, resource)
}

func (r *youtubeResourceRepository) Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.YoutubeResource, error) {
	return r.store.update(ctx, id, scope, updates)
}

func (r *youtubeResourceRepository) SoftDelete(ctx context.Context, id uint, scope models.Scope) error {
	return r.store.softDelete(ctx, id, scope)
}
