package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusCollected = "collected"
)

// Report is a user's submission describing waste found at a location.
// VerificationResult holds the classifier output as an opaque JSON string.
type Report struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             uint      `json:"user_id" gorm:"not null;index"`
	Location           string    `json:"location" gorm:"not null"`
	WasteType          string    `json:"waste_type" gorm:"not null"`
	Amount             string    `json:"amount" gorm:"not null"`
	ImageURL           string    `json:"image_url,omitempty"`
	VerificationResult string    `json:"verification_result,omitempty" gorm:"type:text"`
	Status             string    `json:"status" gorm:"default:pending"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// VerificationResult is the structured output of the image classifier.
type VerificationResult struct {
	WasteType  string  `json:"wasteType"`
	Quantity   string  `json:"quantity"`
	Confidence float64 `json:"confidence"`
}

type CreateReportRequest struct {
	Location           string `json:"location" binding:"required"`
	WasteType          string `json:"waste_type" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
	ImageURL           string `json:"image_url"`
	VerificationResult string `json:"verification_result"`
}
