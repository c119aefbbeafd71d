package db

import (
	"log"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	SaveReport(report *models.Report) (*models.Report, error)
	GetReportByID(reportID string) (*models.Report, error)
	GetRecentReports(limit int) ([]models.Report, error)
	GetReportsByUserID(userID uint) ([]models.Report, error)
	UpdateReportStatus(reportID string, status string) (*models.Report, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if err := r.DB.Create(report).Error; err != nil {
		log.Printf("SaveReport error: %v", err)
		return nil, errors.Wrap(err, "could not create report")
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(reportID string) (*models.Report, error) {
	var report models.Report
	if err := r.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetRecentReports(limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch recent reports")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByUserID(userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch user reports")
	}
	return reports, nil
}

func (r *reportRepo) UpdateReportStatus(reportID string, status string) (*models.Report, error) {
	var report models.Report
	if err := r.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	report.Status = status
	if err := r.DB.Save(&report).Error; err != nil {
		log.Printf("UpdateReportStatus error: %v", err)
		return nil, errors.Wrap(err, "could not update report status")
	}
	return &report, nil
}
