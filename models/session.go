package models

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	ID        string         `json:"id" gorm:"primaryKey;size:64"`
	UserID    string         `json:"userId" gorm:"size:128;not null;index"`
	Data      datatypes.JSON `json:"data"`
	UserAgent string         `json:"userAgent" gorm:"size:512"`
	IPAddress string         `json:"ipAddress" gorm:"size:64"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SessionData is the snapshot written into Session.Data at issue time.
type SessionData struct {
	Role     Role   `json:"role"`
	Provider string `json:"provider"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
