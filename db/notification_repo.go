package db

import (
	"log"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) (*models.Notification, error)
	GetUnreadNotificationsByUserID(userID uint) ([]models.Notification, error)
	FindNotificationByID(id uint) (*models.Notification, error)
	MarkNotificationAsRead(id uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := n.DB.Create(notification).Error; err != nil {
		log.Printf("CreateNotification error: %v", err)
		return nil, errors.Wrap(err, "could not create notification")
	}
	return notification, nil
}

func (n *notificationRepo) GetUnreadNotificationsByUserID(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.DB.Where("user_id = ? AND is_read = ?", userID, false).Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch unread notifications")
	}
	return notifications, nil
}

func (n *notificationRepo) FindNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := n.DB.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkNotificationAsRead is idempotent: marking an already-read
// notification is a no-op, not an error.
func (n *notificationRepo) MarkNotificationAsRead(id uint) error {
	result := n.DB.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		log.Printf("MarkNotificationAsRead error: %v", result.Error)
		return errors.Wrap(result.Error, "could not mark notification as read")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
