package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	services.UserService
	deleted string
	err     error
}

func (s *stubUserService) DeleteUser(ctx context.Context, p models.Principal, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubUserService) UpdatePermissions(ctx context.Context, p models.Principal, id string, req models.UpdatePermissionsRequest) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: id, Permissions: req.Permissions}, nil
}

func TestDeleteUserMapsForbidden(t *testing.T) {
	svc := &stubUserService{err: models.ErrorForbidden{Message: "the super admin account cannot be modified"}}
	h := NewUserHandler(svc, helper.NewHTTPHelper())
	r := newEngine()
	root := &models.Principal{UserID: models.SuperAdminID, Role: models.RoleSuperAdmin}
	r.DELETE("/api/users/:id", withPrincipal(root), h.DeleteUser)

	w := request(r, http.MethodDelete, "/api/users/mohit", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "mohit", svc.deleted)

	env := decode(t, w)
	var msg string
	require.NoError(t, json.Unmarshal(env.CodeMessage, &msg))
	assert.Equal(t, "the super admin account cannot be modified", msg)
}

func TestUpdatePermissionsHandler(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, helper.NewHTTPHelper())
	r := newEngine()
	root := &models.Principal{UserID: models.SuperAdminID, Role: models.RoleSuperAdmin}
	r.PATCH("/api/users/:id/permissions", withPrincipal(root), h.UpdatePermissions)

	w := request(r, http.MethodPatch, "/api/users/bob/permissions", map[string]interface{}{
		"permissions": []string{"manage_messages"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &user))
	assert.Equal(t, "bob", user.ID)
	assert.Equal(t, []string{"manage_messages"}, []string(user.Permissions))
}

type stubContactService struct {
	services.ContactService
	unreadOnly bool
	marked     uint
}

func (s *stubContactService) Submit(ctx context.Context, req models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	return &models.ContactMessage{ID: 1, Name: req.Name, Email: req.Email, Message: req.Message}, nil
}

func (s *stubContactService) List(ctx context.Context, p models.Principal, unreadOnly bool) ([]models.ContactMessage, error) {
	s.unreadOnly = unreadOnly
	return []models.ContactMessage{}, nil
}

func (s *stubContactService) MarkRead(ctx context.Context, p models.Principal, id uint) (*models.ContactMessage, error) {
	s.marked = id
	return &models.ContactMessage{ID: id, IsRead: true}, nil
}

func TestContactHandlers(t *testing.T) {
	svc := &stubContactService{}
	h := NewContactHandler(svc, helper.NewHTTPHelper())
	r := newEngine()
	root := &models.Principal{UserID: models.SuperAdminID, Role: models.RoleSuperAdmin}
	r.POST("/api/contact-messages", h.CreateMessage)
	r.GET("/api/contact-messages", withPrincipal(root), h.ListMessages)
	r.PATCH("/api/contact-messages/:id/read", withPrincipal(root), h.MarkRead)

	w := request(r, http.MethodPost, "/api/contact-messages", map[string]string{"name": "Ravi", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPost, "/api/contact-messages", map[string]string{"name": "Ravi", "email": "ravi@example.com", "message": "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(r, http.MethodGet, "/api/contact-messages?unread=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.unreadOnly)

	w = request(r, http.MethodPatch, "/api/contact-messages/9/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), svc.marked)
}

func TestPaymentHandlers(t *testing.T) {
	repo := &paymentProductRepo{}
	h := NewPaymentHandler(services.NewPaymentService(repo), helper.NewHTTPHelper())
	r := newEngine()
	r.POST("/api/process-payment", h.ProcessPayment)
	r.POST("/api/emi-options", h.EmiOptions)

	w := request(r, http.MethodPost, "/api/process-payment", map[string]interface{}{
		"productId": "MCG-001", "customerName": "Ravi", "customerEmail": "ravi@example.com", "paymentMethod": "bitcoin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPost, "/api/process-payment", map[string]interface{}{
		"productId": "MCG-001", "customerName": "Ravi", "customerEmail": "ravi@example.com", "paymentMethod": "card",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.PaymentResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.Equal(t, "499.00", resp.Amount)

	w = request(r, http.MethodPost, "/api/emi-options", map[string]string{"amount": "10000"})
	assert.Equal(t, http.StatusOK, w.Code)
	var plans []models.EmiPlan
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &plans))
	assert.Len(t, plans, 4)
}

type paymentProductRepo struct{}

func (paymentProductRepo) List(context.Context, models.Scope, models.ListParams) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (paymentProductRepo) GetByID(context.Context, uint, models.Scope) (*models.Product, error) {
	return nil, models.ErrorNotFound{Message: "product not found"}
}

func (paymentProductRepo) GetActiveByProductID(ctx context.Context, productID string) (*models.Product, error) {
	return &models.Product{ProductID: productID, Name: "Aim Panel", Price: "499.00", Currency: "INR"}, nil
}

func (paymentProductRepo) Create(context.Context, *models.Product) error { return nil }

func (paymentProductRepo) Update(context.Context, uint, models.Scope, map[string]interface{}) (*models.Product, error) {
	return nil, nil
}

func (paymentProductRepo) SoftDelete(context.Context, uint, models.Scope) error { return nil }

func TestChatHandlerAlwaysAnswers(t *testing.T) {
	h := NewChatHandler(services.NewChatService(services.ChatOptions{}), helper.NewHTTPHelper())
	r := newEngine()
	r.POST("/api/ai-chat", h.Chat)

	w := request(r, http.MethodPost, "/api/ai-chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPost, "/api/ai-chat", map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, services.ChatFallbackReply, resp.Reply)
}

func TestUploadHandlerUnavailable(t *testing.T) {
	h := NewUploadHandler(services.NewUploadService(nil, services.UploadOptions{}), helper.NewHTTPHelper())
	r := newEngine()
	r.GET("/api/uploads/presign", withPrincipal(&models.Principal{UserID: "alice"}), h.Presign)

	w := request(r, http.MethodGet, "/api/uploads/presign", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodGet, "/api/uploads/presign?filename=a.png&contentType=image/png", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "serviceUnavailable", decode(t, w).CodeType)
}

type stubAuthService struct {
	services.AuthService
	meta services.SessionMeta
	err  error
}

func (s *stubAuthService) Login(ctx context.Context, req models.LoginRequest, meta services.SessionMeta) (*models.AuthResponse, error) {
	s.meta = meta
	if s.err != nil {
		return nil, s.err
	}
	return &models.AuthResponse{Token: "signed", User: models.User{ID: req.Username}}, nil
}

func (s *stubAuthService) GoogleLogin(ctx context.Context, req models.GoogleLoginRequest, meta services.SessionMeta) (*models.AuthResponse, error) {
	return &models.AuthResponse{Token: "signed", User: models.User{ID: req.UID}, IsNewUser: true}, nil
}

func TestLoginHandler(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, helper.NewHTTPHelper())
	r := newEngine()
	r.POST("/api/login", h.Login)
	r.POST("/api/auth/google-login", h.GoogleLogin)

	w := request(r, http.MethodPost, "/api/login", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.Equal(t, "signed", resp.Token)
	assert.NotEmpty(t, svc.meta.IPAddress)

	svc.err = models.ErrorUnauthorized{Message: "invalid credentials"}
	w = request(r, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/api/auth/google-login", map[string]string{"uid": "g-1", "email": "a@example.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
