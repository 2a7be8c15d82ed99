package repositories

import (
	"context"

	"phantoms-store/models"

	"gorm.io/gorm"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id uint) (*models.ContactMessage, error)
}

type contactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.IsRead = false
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactMessageRepository) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	messages := make([]models.ContactMessage, 0)
	err := query.Find(&messages).Error
	return messages, err
}

// MarkRead only ever writes true; there is no path back to unread.
func (r *contactMessageRepository) MarkRead(ctx context.Context, id uint) (*models.ContactMessage, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrorNotFound{Message: "contact message not found"}
	}

	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
