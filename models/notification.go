package models

const NotificationTypeReward = "reward"

// Notification represents notifications sent to users
type Notification struct {
	Model
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
