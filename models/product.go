package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryPanels   Category = "panels"
	CategoryBots     Category = "bots"
	CategoryWebsites Category = "websites"
	CategoryYoutube  Category = "youtube"
)

// FallbackPrefix is used for categories outside the fixed set.
const FallbackPrefix = "MCP"

var categoryPrefixes = map[Category]string{
	CategoryPanels:   "MCG",
	CategoryBots:     "MCB",
	CategoryWebsites: "MCW",
	CategoryYoutube:  "MCY",
}

func (c Category) Valid() bool {
	_, ok := categoryPrefixes[c]
	return ok
}

func (c Category) Prefix() string {
	if p, ok := categoryPrefixes[c]; ok {
		return p
	}
	return FallbackPrefix
}

// FormatProductID renders "<prefix>-<seq>" with the sequence padded to three digits.
func FormatProductID(c Category, seq int64) string {
	return fmt.Sprintf("%s-%03d", c.Prefix(), seq)
}

type Product struct {
	ID           uint            `json:"id" gorm:"primarykey"`
	ProductID    string          `json:"productId" gorm:"column:product_id;uniqueIndex;size:32;not null"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        string          `json:"price" gorm:"size:32;not null"`
	Currency     string          `json:"currency" gorm:"size:8;not null;default:'INR'"`
	Category     Category        `json:"category" gorm:"size:32;not null;index"`
	ImageURL     string          `json:"imageUrl" gorm:"column:image_url"`
	VideoURL     string          `json:"videoUrl" gorm:"column:video_url"`
	PurchaseLink string          `json:"purchaseLink" gorm:"column:purchase_link"`
	Status       LifecycleStatus `json:"status" gorm:"size:16;not null;default:'active';index"`
	IsActive     bool            `json:"isActive" gorm:"-"`
	OwnerID      string          `json:"ownerId" gorm:"size:128;not null;index"`
	Owner        *User           `json:"-" gorm:"foreignKey:OwnerID"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.IsActive = p.Status.IsActive()
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.IsActive = p.Status.IsActive()
	return nil
}

// ProductSequence is the persisted counter behind product ids, one row per prefix.
type ProductSequence struct {
	Prefix    string `gorm:"primaryKey;size:8"`
	LastValue int64  `gorm:"not null;default:0"`
}
