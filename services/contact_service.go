package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

type ContactService interface {
	Submit(ctx context.Context, req models.CreateContactMessageRequest) (*models.ContactMessage, error)
	List(ctx context.Context, principal models.Principal, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, principal models.Principal, id uint) (*models.ContactMessage, error)
	// Wait blocks until in-flight notifications finish.
	Wait()
}

type contactService struct {
	repo     repositories.ContactMessageRepository
	notifier Notifier
	wg       sync.WaitGroup
}

func NewContactService(repo repositories.ContactMessageRepository, notifier Notifier) ContactService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &contactService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *contactService) Submit(ctx context.Context, req models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, models.ErrorValidation{Message: "name and message must not be blank"}
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notify(ctx, *msg)
	return msg, nil
}

// notify sends the admin e-mail in the background. Failures are only logged.
func (s *contactService) notify(ctx context.Context, msg models.ContactMessage) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyContactMessage(nctx, msg); err != nil {
			logger.Error(nctx, "contact notification failed", err, zap.Uint("message_id", msg.ID))
		}
	}()
}

func (s *contactService) Wait() {
	s.wg.Wait()
}

func (s *contactService) List(ctx context.Context, principal models.Principal, unreadOnly bool) ([]models.ContactMessage, error) {
	if err := requirePermission(principal, models.PermManageMessages); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, unreadOnly)
}

func (s *contactService) MarkRead(ctx context.Context, principal models.Principal, id uint) (*models.ContactMessage, error) {
	if err := requirePermission(principal, models.PermManageMessages); err != nil {
		return nil, err
	}
	return s.repo.MarkRead(ctx, id)
}
