package services

import (
	"log"
	"net/http"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

const DefaultRecentReportLimit = 10

type ReportService interface {
	SubmitReport(userID uint, request *models.CreateReportRequest) (*models.Report, error)
	CollectReport(reportID string, collectorID uint) (*models.Report, error)
	GetRecentReports(limit int) ([]models.Report, error)
	GetReportByID(reportID string) (*models.Report, error)
}

type reportService struct {
	Config        *config.Config
	reportRepo    db.ReportRepository
	authRepo      db.AuthRepository
	rewardService RewardService
}

func NewReportService(reportRepo db.ReportRepository, authRepo db.AuthRepository, rewardService RewardService, conf *config.Config) ReportService {
	return &reportService{
		Config:        conf,
		reportRepo:    reportRepo,
		authRepo:      authRepo,
		rewardService: rewardService,
	}
}

// SubmitReport records the report and then grants the submitter a fixed
// number of points. The report insert is the only write that can fail the
// call: a failed grant (or its notification) after a successful insert is
// logged and the report stands without a corresponding reward.
func (s *reportService) SubmitReport(userID uint, request *models.CreateReportRequest) (*models.Report, error) {
	if request == nil || request.Location == "" || request.WasteType == "" || request.Amount == "" {
		return nil, apiError.ErrValidation
	}

	if _, err := s.authRepo.FindUserByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("SubmitReport error finding user %d: %v", userID, err)
		return nil, apiError.ErrPersistence
	}

	report := &models.Report{
		UserID:             userID,
		Location:           request.Location,
		WasteType:          request.WasteType,
		Amount:             request.Amount,
		ImageURL:           request.ImageURL,
		VerificationResult: request.VerificationResult,
		Status:             models.ReportStatusPending,
	}
	created, err := s.reportRepo.SaveReport(report)
	if err != nil {
		return nil, apiError.ErrPersistence
	}

	points := s.Config.ReportPointValue
	_, err = s.rewardService.GrantPoints(userID, points, models.TransactionEarnedReport,
		"Points earned for submitting a waste report")
	if err != nil {
		log.Printf("report %s saved but reward grant failed: %v", created.ID, err)
	}

	return created, nil
}

// CollectReport marks a pending report collected and rewards the collector.
func (s *reportService) CollectReport(reportID string, collectorID uint) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("CollectReport error fetching report %s: %v", reportID, err)
		return nil, apiError.ErrPersistence
	}
	if report.Status != models.ReportStatusPending {
		return nil, apiError.New("report has already been collected", http.StatusConflict)
	}

	updated, err := s.reportRepo.UpdateReportStatus(reportID, models.ReportStatusCollected)
	if err != nil {
		return nil, apiError.ErrPersistence
	}

	points := s.Config.ReportPointValue
	_, err = s.rewardService.GrantPoints(collectorID, points, models.TransactionEarnedCollect,
		"Points earned for collecting waste")
	if err != nil {
		log.Printf("report %s collected but reward grant failed: %v", reportID, err)
	}

	return updated, nil
}

func (s *reportService) GetRecentReports(limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = DefaultRecentReportLimit
	}
	reports, err := s.reportRepo.GetRecentReports(limit)
	if err != nil {
		log.Printf("GetRecentReports error: %v", err)
		return nil, apiError.ErrPersistence
	}
	return reports, nil
}

func (s *reportService) GetReportByID(reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetReportByID error for %s: %v", reportID, err)
		return nil, apiError.ErrPersistence
	}
	return report, nil
}
