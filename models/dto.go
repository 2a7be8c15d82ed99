package models

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	UID         string `json:"uid" validate:"required,max=128"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"max=255"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

type RegisterSellerRequest struct {
	UID              string `json:"uid" validate:"required,max=128"`
	Email            string `json:"email" validate:"required,email"`
	DisplayName      string `json:"displayName" validate:"max=255"`
	PhotoURL         string `json:"photoURL" validate:"omitempty,url"`
	StoreName        string `json:"storeName" validate:"required,max=255"`
	StoreDescription string `json:"storeDescription" validate:"max=2000"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
	IsNewUser bool      `json:"isNewUser,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName      *string `json:"displayName" validate:"omitempty,max=255"`
	PhotoURL         *string `json:"photoURL" validate:"omitempty,url"`
	StoreName        *string `json:"storeName" validate:"omitempty,max=255"`
	StoreDescription *string `json:"storeDescription" validate:"omitempty,max=2000"`
}

type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	DisplayName string   `json:"displayName" validate:"max=255"`
	Role        string   `json:"role" validate:"required,oneof=user seller admin"`
	Permissions []string `json:"permissions"`
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=5000"`
	Price        string `json:"price" validate:"required,price"`
	Currency     string `json:"currency" validate:"omitempty,len=3,alpha"`
	Category     string `json:"category" validate:"required,oneof=panels bots websites youtube"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	VideoURL     string `json:"videoUrl" validate:"omitempty,url"`
	PurchaseLink string `json:"purchaseLink" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Price        *string `json:"price" validate:"omitempty,price"`
	Currency     *string `json:"currency" validate:"omitempty,len=3,alpha"`
	Category     *string `json:"category" validate:"omitempty,oneof=panels bots websites youtube"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	VideoURL     *string `json:"videoUrl" validate:"omitempty,url"`
	PurchaseLink *string `json:"purchaseLink" validate:"omitempty,url"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CreateYoutubeResourceRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=5000"`
	YoutubeURL   string `json:"youtubeUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Category     string `json:"category" validate:"required,oneof=tutorials reviews gaming files"`
	Duration     string `json:"duration" validate:"max=32"`
	Views        string `json:"views" validate:"max=32"`
}

type UpdateYoutubeResourceRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	YoutubeURL   *string `json:"youtubeUrl" validate:"omitempty,url"`
	ThumbnailURL *string `json:"thumbnailUrl" validate:"omitempty,url"`
	Category     *string `json:"category" validate:"omitempty,oneof=tutorials reviews gaming files"`
	Duration     *string `json:"duration" validate:"omitempty,max=32"`
	Views        *string `json:"views" validate:"omitempty,max=32"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ListParams struct {
	Category        string `form:"category"`
	Search          string `form:"search"`
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	IncludeInactive bool   `form:"includeInactive"`
}

// Normalize clamps paging to sane bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PaymentRequest struct {
	ProductID     string `json:"productId" validate:"required,max=32"`
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card upi netbanking emi"`
	EmiMonths     int    `json:"emiMonths" validate:"omitempty,oneof=3 6 9 12"`
}

type PaymentResponse struct {
	OrderID       string    `json:"orderId"`
	Status        string    `json:"status"`
	ProductID     string    `json:"productId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	EmiPlan       *EmiPlan  `json:"emiPlan,omitempty"`
	Message       string    `json:"message"`
	ProcessedAt   time.Time `json:"processedAt"`
}

type EmiOptionsRequest struct {
	Amount string `json:"amount" validate:"required,price"`
}

type EmiPlan struct {
	Months             int     `json:"months"`
	AnnualRate         float64 `json:"annualRate"`
	MonthlyInstallment string  `json:"monthlyInstallment"`
	TotalPayable       string  `json:"totalPayable"`
	TotalInterest      string  `json:"totalInterest"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required,max=2000"`
	History []ChatMessage `json:"history" validate:"max=20,dive"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created []Product        `json:"created"`
	Errors  []ImportRowError `json:"errors"`
}

type PresignRequest struct {
	Filename    string `form:"filename" validate:"required,max=200"`
	ContentType string `form:"contentType" validate:"required,max=100"`
}

type PresignResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expiresAt"`
}
