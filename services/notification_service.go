package services

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

type NotificationService interface {
	Notify(userID uint, message string, notificationType string) (*models.Notification, error)
	ListUnread(userID uint) ([]models.Notification, error)
	Acknowledge(notificationID uint) error
}

type notificationService struct {
	Config           *config.Config
	notificationRepo db.NotificationRepository
}

func NewNotificationService(notificationRepo db.NotificationRepository, conf *config.Config) NotificationService {
	return &notificationService{
		Config:           conf,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Notify(userID uint, message string, notificationType string) (*models.Notification, error) {
	if message == "" {
		return nil, apiError.ErrValidation
	}
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notificationType,
	}
	created, err := s.notificationRepo.CreateNotification(notification)
	if err != nil {
		return nil, apiError.ErrPersistence
	}
	return created, nil
}

func (s *notificationService) ListUnread(userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetUnreadNotificationsByUserID(userID)
	if err != nil {
		log.Printf("ListUnread error: %v", err)
		return nil, apiError.ErrPersistence
	}
	return notifications, nil
}

func (s *notificationService) Acknowledge(notificationID uint) error {
	err := s.notificationRepo.MarkNotificationAsRead(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("Acknowledge error: %v", err)
		return apiError.ErrPersistence
	}
	return nil
}

// Poller re-fetches a user's unread notifications on a fixed interval and
// hands each batch to a deliver callback. It runs until its context is
// cancelled or deliver returns an error.
type Poller struct {
	service  NotificationService
	interval time.Duration
}

func NewPoller(service NotificationService, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller{service: service, interval: interval}
}

func (p *Poller) Run(ctx context.Context, userID uint, deliver func([]models.Notification) error) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			notifications, err := p.service.ListUnread(userID)
			if err != nil {
				// stale reads between polls are tolerated; so are failed ones
				log.Printf("notification poll for user %d failed: %v", userID, err)
				continue
			}
			if err := deliver(notifications); err != nil {
				return err
			}
		}
	}
}
