package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"phantoms-store/models"

	"gorm.io/gorm"
)

// ownedStore holds the queries shared by every entity that carries owner_id and status.
type ownedStore[T any] struct {
	db            *gorm.DB
	entity        string
	searchColumns []string
}

// scoped starts a query on T with the visibility policy already applied.
func (s ownedStore[T]) scoped(ctx context.Context, scope models.Scope, list bool) *gorm.DB {
	return withScope(scope, list)(s.db.WithContext(ctx).Model(new(T)))
}

func (s ownedStore[T]) notFound() error {
	return models.ErrorNotFound{Message: s.entity + " not found"}
}

func (s ownedStore[T]) list(ctx context.Context, scope models.Scope, params models.ListParams) ([]T, int64, error) {
	query := s.scoped(ctx, scope, true)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if term := strings.TrimSpace(params.Search); term != "" && len(s.searchColumns) > 0 {
		query = query.Where(s.searchClause(term))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]T, 0)
	err := query.Order("created_at DESC").
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	return rows, total, err
}

// searchClause ORs a case-insensitive substring match over the search columns.
func (s ownedStore[T]) searchClause(term string) *gorm.DB {
	pattern := "%" + escapeLike(term) + "%"
	clause := s.db.Where(fmt.Sprintf("%s ILIKE ?", s.searchColumns[0]), pattern)
	for _, col := range s.searchColumns[1:] {
		clause = clause.Or(fmt.Sprintf("%s ILIKE ?", col), pattern)
	}
	return clause
}

func (s ownedStore[T]) get(ctx context.Context, id uint, scope models.Scope) (*T, error) {
	var row T
	err := s.scoped(ctx, scope, false).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s ownedStore[T]) create(ctx context.Context, row *T) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s ownedStore[T]) update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*T, error) {
	if len(updates) > 0 {
		res := s.scoped(ctx, scope, false).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			if IsDuplicateKeyError(res.Error) {
				return nil, models.ErrorConflict{Message: s.entity + " conflicts with an existing record"}
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, s.notFound()
		}
	}
	return s.get(ctx, id, scope)
}

// softDelete flips status to inactive. Repeating it on an inactive row still matches and succeeds.
func (s ownedStore[T]) softDelete(ctx context.Context, id uint, scope models.Scope) error {
	res := s.scoped(ctx, scope, false).
		Where("id = ?", id).
		Update("status", models.StatusInactive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.notFound()
	}
	return nil
}
