package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
)

func newTestReportService(t *testing.T, gdb *db.GormDB, rewardService RewardService) ReportService {
	t.Helper()
	conf := testConfig()
	if rewardService == nil {
		rewardService = newTestRewardService(t, gdb)
	}
	return NewReportService(db.NewReportRepo(gdb), db.NewAuthRepo(gdb), rewardService, conf)
}

func validReportRequest() *models.CreateReportRequest {
	return &models.CreateReportRequest{
		Location:           "12 Marina Road, Lagos",
		WasteType:          "plastic",
		Amount:             "2 kg",
		VerificationResult: `{"wasteType":"plastic","quantity":"2 kg","confidence":0.92}`,
	}
}

func TestSubmitReportWritesReportTransactionAndNotification(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, nil)
	user := createTestUser(t, gdb, "submit@example.com")

	report, err := svc.SubmitReport(user.ID, validReportRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())

	var reports []models.Report
	require.NoError(t, gdb.DB.Where("user_id = ?", user.ID).Find(&reports).Error)
	assert.Len(t, reports, 1)

	var transactions []models.Transaction
	require.NoError(t, gdb.DB.Where("user_id = ?", user.ID).Find(&transactions).Error)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionEarnedReport, transactions[0].Type)
	assert.Equal(t, 10, transactions[0].Amount)

	var notifications []models.Notification
	require.NoError(t, gdb.DB.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)
}

func TestSubmitReportValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, nil)
	user := createTestUser(t, gdb, "invalid@example.com")

	for _, request := range []*models.CreateReportRequest{
		nil,
		{WasteType: "plastic", Amount: "2 kg"},
		{Location: "somewhere", Amount: "2 kg"},
		{Location: "somewhere", WasteType: "plastic"},
	} {
		_, err := svc.SubmitReport(user.ID, request)
		assert.ErrorIs(t, err, apiError.ErrValidation)
	}
}

func TestSubmitReportUnknownUser(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, nil)

	_, err := svc.SubmitReport(4242, validReportRequest())
	assert.ErrorIs(t, err, apiError.ErrNotFound)
}

type failingRewardService struct {
	RewardService
}

func (f *failingRewardService) GrantPoints(userID uint, amount int, transactionType string, description string) (*models.Transaction, error) {
	return nil, apiError.ErrPersistence
}

// A failed grant after a successful insert leaves the report recorded
// without a corresponding reward; callers must treat partial completion as
// possible.
func TestSubmitReportSurvivesFailedGrant(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, &failingRewardService{})
	user := createTestUser(t, gdb, "partial@example.com")

	report, err := svc.SubmitReport(user.ID, validReportRequest())
	require.NoError(t, err)
	assert.NotNil(t, report)

	var reportCount, transactionCount int64
	require.NoError(t, gdb.DB.Model(&models.Report{}).Where("user_id = ?", user.ID).Count(&reportCount).Error)
	require.NoError(t, gdb.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&transactionCount).Error)
	assert.EqualValues(t, 1, reportCount)
	assert.EqualValues(t, 0, transactionCount)
}

func TestCollectReport(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, nil)
	reporter := createTestUser(t, gdb, "reporter@example.com")
	collector := createTestUser(t, gdb, "collector@example.com")

	report, err := svc.SubmitReport(reporter.ID, validReportRequest())
	require.NoError(t, err)

	collected, err := svc.CollectReport(report.ID.String(), collector.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusCollected, collected.Status)

	var transactions []models.Transaction
	require.NoError(t, gdb.DB.Where("user_id = ?", collector.ID).Find(&transactions).Error)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionEarnedCollect, transactions[0].Type)

	// a second collection attempt is rejected
	_, err = svc.CollectReport(report.ID.String(), collector.ID)
	require.Error(t, err)
}

func TestGetRecentReportsLimit(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestReportService(t, gdb, nil)
	user := createTestUser(t, gdb, "recent@example.com")

	for i := 0; i < 4; i++ {
		_, err := svc.SubmitReport(user.ID, validReportRequest())
		require.NoError(t, err)
	}

	reports, err := svc.GetRecentReports(3)
	require.NoError(t, err)
	assert.Len(t, reports, 3)
}
