package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

func TestUnreadNotificationsExcludeAcknowledged(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewNotificationRepo(gdb)
	user := createTestUser(t, gdb, "notify@example.com")

	first, err := repo.CreateNotification(&models.Notification{
		UserID:  user.ID,
		Message: "You have earned 10 points for reporting wastes!",
		Type:    models.NotificationTypeReward,
	})
	require.NoError(t, err)

	second, err := repo.CreateNotification(&models.Notification{
		UserID:  user.ID,
		Message: "You have earned 10 points for collecting wastes!",
		Type:    models.NotificationTypeReward,
	})
	require.NoError(t, err)

	require.NoError(t, repo.MarkNotificationAsRead(first.ID))

	unread, err := repo.GetUnreadNotificationsByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].ID)
}

func TestMarkNotificationAsReadIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewNotificationRepo(gdb)
	user := createTestUser(t, gdb, "idempotent@example.com")

	notification, err := repo.CreateNotification(&models.Notification{
		UserID:  user.ID,
		Message: "You have earned 10 points for reporting wastes!",
		Type:    models.NotificationTypeReward,
	})
	require.NoError(t, err)

	require.NoError(t, repo.MarkNotificationAsRead(notification.ID))
	require.NoError(t, repo.MarkNotificationAsRead(notification.ID), "second acknowledgement must not error")

	stored, err := repo.FindNotificationByID(notification.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestMarkNotificationAsReadUnknownID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewNotificationRepo(gdb)

	err := repo.MarkNotificationAsRead(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
