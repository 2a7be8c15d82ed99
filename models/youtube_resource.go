package models

import (
	"time"

	"gorm.io/gorm"
)

type VideoCategory string

const (
	VideoCategoryTutorials VideoCategory = "tutorials"
	VideoCategoryReviews   VideoCategory = "reviews"
	VideoCategoryGaming    VideoCategory = "gaming"
	VideoCategoryFiles     VideoCategory = "files"
)

type YoutubeResource struct {
	ID           uint            `json:"id" gorm:"primarykey"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	YoutubeURL   string          `json:"youtubeUrl" gorm:"column:youtube_url;not null"`
	ThumbnailURL string          `json:"thumbnailUrl" gorm:"column:thumbnail_url"`
	Category     VideoCategory   `json:"category" gorm:"size:32;not null;index"`
	Duration     string          `json:"duration" gorm:"size:32"`
	Views        string          `json:"views" gorm:"size:32"`
	Status       LifecycleStatus `json:"status" gorm:"size:16;not null;default:'active';index"`
	IsActive     bool            `json:"isActive" gorm:"-"`
	OwnerID      string          `json:"ownerId" gorm:"size:128;not null;index"`
	Owner        *User           `json:"-" gorm:"foreignKey:OwnerID"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (r *YoutubeResource) AfterFind(tx *gorm.DB) error {
	r.IsActive = r.Status.IsActive()
	return nil
}

func (r *YoutubeResource) AfterSave(tx *gorm.DB) error {
	r.IsActive = r.Status.IsActive()
	return nil
}
