package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const (
	providerPassword = "password"
	providerGoogle   = "google"
	maxUserAgentLen  = 512
)

type AuthOptions struct {
	JWTSecret       []byte
	SessionTTL      time.Duration
	SuperAdminEmail string
}

// SessionMeta is request metadata recorded on the session row.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest, meta SessionMeta) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, req models.GoogleLoginRequest, meta SessionMeta) (*models.AuthResponse, error)
	RegisterSeller(ctx context.Context, req models.RegisterSellerRequest, meta SessionMeta) (*models.AuthResponse, error)
	Logout(ctx context.Context, principal models.Principal) error
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
	GetProfile(ctx context.Context, principal models.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	opts        AuthOptions
	now         func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, opts AuthOptions) AuthService {
	opts.SuperAdminEmail = strings.ToLower(strings.TrimSpace(opts.SuperAdminEmail))
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func invalidCredentials() error {
	return models.ErrorUnauthorized{Message: "invalid credentials"}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest, meta SessionMeta) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if isNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.issueSession(ctx, user, providerPassword, meta, false)
}

func (s *authService) GoogleLogin(ctx context.Context, req models.GoogleLoginRequest, meta SessionMeta) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if email == s.opts.SuperAdminEmail {
		logger.Warn(ctx, "google sign-in refused for reserved e-mail")
		return nil, models.ErrorUnauthorized{Message: "this account signs in with a password"}
	}

	user, err := s.findOAuthUser(ctx, req.UID, email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if user != nil {
		return s.issueSession(ctx, user, providerGoogle, meta, false)
	}

	user = &models.User{
		ID:          req.UID,
		Email:       models.StringPtr(email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhotoURL:    req.PhotoURL,
		Role:        models.RoleUser,
		IsVerified:  true,
		Permissions: []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user bootstrapped from google sign-in", zap.String("user_id", user.ID))

	return s.issueSession(ctx, user, providerGoogle, meta, true)
}

func (s *authService) RegisterSeller(ctx context.Context, req models.RegisterSellerRequest, meta SessionMeta) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.UID == models.SuperAdminID || email == s.opts.SuperAdminEmail {
		return nil, models.ErrorConflict{Message: "this account cannot be registered as a seller"}
	}

	user, err := s.findOAuthUser(ctx, req.UID, email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	sellerGrants := models.RoleSeller.Grants()

	if user == nil {
		user = &models.User{
			ID:               req.UID,
			Email:            models.StringPtr(email),
			DisplayName:      strings.TrimSpace(req.DisplayName),
			PhotoURL:         req.PhotoURL,
			Role:             models.RoleSeller,
			StoreName:        strings.TrimSpace(req.StoreName),
			StoreDescription: strings.TrimSpace(req.StoreDescription),
			IsVerified:       true,
			Permissions:      sellerGrants.Strings(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		logger.Info(ctx, "seller registered", zap.String("user_id", user.ID))
		return s.issueSession(ctx, user, providerGoogle, meta, true)
	}

	if user.Role != models.RoleUser {
		return nil, models.ErrorConflict{Message: "account is already registered as " + string(user.Role)}
	}

	merged := user.PermissionSet()
	for p := range sellerGrants {
		merged[p] = struct{}{}
	}
	user.Role = models.RoleSeller
	user.StoreName = strings.TrimSpace(req.StoreName)
	user.StoreDescription = strings.TrimSpace(req.StoreDescription)
	user.Permissions = merged.Strings()
	if user.DisplayName == "" {
		user.DisplayName = strings.TrimSpace(req.DisplayName)
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user upgraded to seller", zap.String("user_id", user.ID))

	return s.issueSession(ctx, user, providerGoogle, meta, false)
}

// findOAuthUser looks a provider identity up by uid, then by e-mail. Provider
// identities are not verified, so the reserved record and any account holding
// a local password or an admin role are never reachable this way.
func (s *authService) findOAuthUser(ctx context.Context, uid, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if isNotFound(err) && email != "" {
		user, err = s.userRepo.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	if user.ID == models.SuperAdminID {
		return nil, models.ErrorUnauthorized{Message: "this identity is reserved"}
	}
	if user.PasswordHash != "" || user.Role == models.RoleAdmin || user.Role == models.RoleSuperAdmin {
		return nil, models.ErrorUnauthorized{Message: "this account signs in with a password"}
	}
	return user, nil
}

func (s *authService) issueSession(ctx context.Context, user *models.User, provider string, meta SessionMeta, isNew bool) (*models.AuthResponse, error) {
	now := s.now()

	data, err := json.Marshal(models.SessionData{Role: user.Role, Provider: provider})
	if err != nil {
		return nil, err
	}

	userAgent := meta.UserAgent
	if len(userAgent) > maxUserAgentLen {
		userAgent = userAgent[:maxUserAgentLen]
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Data:      datatypes.JSON(data),
		UserAgent: userAgent,
		IPAddress: meta.IPAddress,
		ExpiresAt: now.Add(s.opts.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(user, session, now)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *user,
		IsNewUser: isNew,
	}, nil
}

func (s *authService) signToken(user *models.User, session *models.Session, now time.Time) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.JWTSecret)
}

// Authenticate checks the token signature, then the session row, then reloads
// the user so role changes and deletions apply to live sessions.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.opts.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Message: "invalid token"}
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "session expired or revoked"}
		}
		return nil, err
	}
	if session.Expired(s.now()) || session.UserID != claims.Subject {
		return nil, models.ErrorUnauthorized{Message: "session expired or revoked"}
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "account no longer exists"}
		}
		return nil, err
	}

	return &models.Principal{
		UserID:      user.ID,
		Role:        user.Role,
		Permissions: user.PermissionSet(),
		SessionID:   session.ID,
	}, nil
}

func (s *authService) Logout(ctx context.Context, principal models.Principal) error {
	return s.sessionRepo.Delete(ctx, principal.SessionID)
}

func (s *authService) GetProfile(ctx context.Context, principal models.Principal) (*models.User, error) {
	return s.userRepo.GetByID(ctx, principal.UserID)
}

func (s *authService) UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	if req.StoreName != nil {
		user.StoreName = strings.TrimSpace(*req.StoreName)
	}
	if req.StoreDescription != nil {
		user.StoreDescription = strings.TrimSpace(*req.StoreDescription)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
