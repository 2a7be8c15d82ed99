package services

import (
	"context"
	"sync"
	"time"

	"phantoms-store/models"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	calls []string

	createErr error
	deleteErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.record("Create")
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.ID]; ok {
		return models.ErrorConflict{Message: "user already exists"}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.record("GetByID")
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, models.ErrorNotFound{Message: "user not found"}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.record("GetByEmail")
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrorNotFound{Message: "user not found"}
}

func (r *fakeUserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	r.record("GetByLogin")
	for _, u := range r.users {
		if (u.Username != nil && *u.Username == login) || (u.Email != nil && *u.Email == login) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrorNotFound{Message: "user not found"}
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	r.record("List")
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *models.User) error {
	r.record("Save")
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePermissions(ctx context.Context, id string, permissions []string) error {
	r.record("UpdatePermissions")
	u, ok := r.users[id]
	if !ok {
		return models.ErrorNotFound{Message: "user not found"}
	}
	u.Permissions = permissions
	return nil
}

func (r *fakeUserRepo) DeleteCascade(ctx context.Context, id string) error {
	r.record("DeleteCascade")
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return models.ErrorNotFound{Message: "user not found"}
	}
	delete(r.users, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, models.ErrorNotFound{Message: "session not found"}
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	ListFn                 func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error)
	GetByIDFn              func(ctx context.Context, id uint, scope models.Scope) (*models.Product, error)
	GetActiveByProductIDFn func(ctx context.Context, productID string) (*models.Product, error)
	CreateFn               func(ctx context.Context, product *models.Product) error
	UpdateFn               func(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error)
	SoftDeleteFn           func(ctx context.Context, id uint, scope models.Scope) error
}

func (r *fakeProductRepo) List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.Product, int64, error) {
	return r.ListFn(ctx, scope, params)
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uint, scope models.Scope) (*models.Product, error) {
	return r.GetByIDFn(ctx, id, scope)
}

func (r *fakeProductRepo) GetActiveByProductID(ctx context.Context, productID string) (*models.Product, error) {
	return r.GetActiveByProductIDFn(ctx, productID)
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	return r.CreateFn(ctx, product)
}

func (r *fakeProductRepo) Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.Product, error) {
	return r.UpdateFn(ctx, id, scope, updates)
}

func (r *fakeProductRepo) SoftDelete(ctx context.Context, id uint, scope models.Scope) error {
	return r.SoftDeleteFn(ctx, id, scope)
}

type fakeYoutubeRepo struct {
	ListFn       func(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.YoutubeResource, int64, error)
	GetByIDFn    func(ctx context.Context, id uint, scope models.Scope) (*models.YoutubeResource, error)
	CreateFn     func(ctx context.Context, resource *models.YoutubeResource) error
	UpdateFn     func(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.YoutubeResource, error)
	SoftDeleteFn func(ctx context.Context, id uint, scope models.Scope) error
}

func (r *fakeYoutubeRepo) List(ctx context.Context, scope models.Scope, params models.ListParams) ([]models.YoutubeResource, int64, error) {
	return r.ListFn(ctx, scope, params)
}

func (r *fakeYoutubeRepo) GetByID(ctx context.Context, id uint, scope models.Scope) (*models.YoutubeResource, error) {
	return r.GetByIDFn(ctx, id, scope)
}

func (r *fakeYoutubeRepo) Create(ctx context.Context, resource *models.YoutubeResource) error {
	return r.CreateFn(ctx, resource)
}

func (r *fakeYoutubeRepo) Update(ctx context.Context, id uint, scope models.Scope, updates map[string]interface{}) (*models.YoutubeResource, error) {
	return r.UpdateFn(ctx, id, scope, updates)
}

func (r *fakeYoutubeRepo) SoftDelete(ctx context.Context, id uint, scope models.Scope) error {
	return r.SoftDeleteFn(ctx, id, scope)
}

type fakeContactRepo struct {
	CreateFn   func(ctx context.Context, msg *models.ContactMessage) error
	ListFn     func(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkReadFn func(ctx context.Context, id uint) (*models.ContactMessage, error)
}

func (r *fakeContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.CreateFn(ctx, msg)
}

func (r *fakeContactRepo) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	return r.ListFn(ctx, unreadOnly)
}

func (r *fakeContactRepo) MarkRead(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return r.MarkReadFn(ctx, id)
}

type fakeCacheKey struct {
	version int64
	params  models.ListParams
}

// fakeCache mirrors the versioned key layout of the Redis cache.
type fakeCache struct {
	mu          sync.Mutex
	version     int64
	entries     map[fakeCacheKey]CachedProductList
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[fakeCacheKey]CachedProductList{}}
}

func (c *fakeCache) GetList(ctx context.Context, params models.ListParams) (*CachedProductList, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.entries[fakeCacheKey{c.version, params}]
	if !ok {
		return nil, c.version, false
	}
	return &list, c.version, true
}

func (c *fakeCache) SetList(ctx context.Context, version int64, params models.ListParams, list CachedProductList) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fakeCacheKey{version, params}] = list
}

func (c *fakeCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.invalidated++
}

// current returns the page visible under the live version.
func (c *fakeCache) current(params models.ListParams) (CachedProductList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.entries[fakeCacheKey{c.version, params}]
	return list, ok
}

func superAdmin() models.Principal {
	return models.Principal{UserID: models.SuperAdminID, Role: models.RoleSuperAdmin, Permissions: models.AllPermissions()}
}

func seller(id string) models.Principal {
	return models.Principal{UserID: id, Role: models.RoleSeller, Permissions: models.RoleSeller.Grants()}
}
