package services

import (
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *db.GormDB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ecotrack.sqlite")
	gdb, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Report{},
		&models.Transaction{},
		&models.Reward{},
		&models.Notification{},
	))
	return &db.GormDB{DB: gdb}
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:               "test-secret",
		ReportPointValue:        10,
		NotificationPollSeconds: 3,
	}
}

func createTestUser(t *testing.T, gdb *db.GormDB, email string) *models.User {
	t.Helper()
	user := &models.User{Fullname: "Test User", Email: email}
	require.NoError(t, gdb.DB.Create(user).Error)
	return user
}

func newTestRewardService(t *testing.T, gdb *db.GormDB) RewardService {
	t.Helper()
	conf := testConfig()
	notificationService := NewNotificationService(db.NewNotificationRepo(gdb), conf)
	return NewRewardService(db.NewLedgerRepo(gdb), notificationService, conf)
}

func TestGrantPointsValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)
	user := createTestUser(t, gdb, "grant@example.com")

	_, err := svc.GrantPoints(user.ID, 0, models.TransactionEarnedReport, "zero")
	assert.ErrorIs(t, err, apiError.ErrValidation)

	_, err = svc.GrantPoints(user.ID, -5, models.TransactionEarnedReport, "negative")
	assert.ErrorIs(t, err, apiError.ErrValidation)

	_, err = svc.GrantPoints(user.ID, 10, "earned_mystery", "bad type")
	assert.ErrorIs(t, err, apiError.ErrValidation)
}

func TestGrantPointsCreatesNotification(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)
	user := createTestUser(t, gdb, "grantnotify@example.com")

	tx, err := svc.GrantPoints(user.ID, 10, models.TransactionEarnedReport, "report reward")
	require.NoError(t, err)
	assert.Equal(t, 10, tx.Amount)

	var notifications []models.Notification
	require.NoError(t, gdb.DB.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)
	assert.Contains(t, notifications[0].Message, "earned 10 points")
}

func TestComputeBalanceSignedFold(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)
	user := createTestUser(t, gdb, "balance@example.com")

	_, err := svc.GrantPoints(user.ID, 10, models.TransactionEarnedReport, "report")
	require.NoError(t, err)
	_, err = svc.GrantPoints(user.ID, 5, models.TransactionEarnedCollect, "collect")
	require.NoError(t, err)
	_, err = svc.GrantPoints(user.ID, 8, models.TransactionRedeemed, "spent")
	require.NoError(t, err)

	balance, err := svc.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, balance)
}

func TestComputeBalanceNeverNegative(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "negative@example.com")
	svc := newTestRewardService(t, gdb)

	// write the ledger rows directly so redemption exceeds earnings
	require.NoError(t, gdb.DB.Create(&models.Transaction{
		UserID: user.ID, Type: models.TransactionEarnedReport, Amount: 3,
	}).Error)
	require.NoError(t, gdb.DB.Create(&models.Transaction{
		UserID: user.ID, Type: models.TransactionRedeemed, Amount: 9,
	}).Error)

	balance, err := svc.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

// The balance folds the full history, not the ten-entry display window:
// eleven 10-point earnings followed by a 5-point redemption leave 105, even
// though the oldest earning has scrolled out of the recent listing.
func TestComputeBalanceUsesFullHistory(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)
	user := createTestUser(t, gdb, "history@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 11; i++ {
		tx := &models.Transaction{
			UserID: user.ID,
			Type:   models.TransactionEarnedReport,
			Amount: 10,
		}
		tx.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, gdb.DB.Create(tx).Error)
	}
	redeem := &models.Transaction{
		UserID: user.ID,
		Type:   models.TransactionRedeemed,
		Amount: 5,
	}
	redeem.CreatedAt = base.Add(time.Hour)
	require.NoError(t, gdb.DB.Create(redeem).Error)

	window, err := svc.GetRewardTransactions(user.ID)
	require.NoError(t, err)
	assert.Len(t, window, DefaultTransactionWindow)

	balance, err := svc.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 105, balance)
}

func TestRedeemPoints(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)
	user := createTestUser(t, gdb, "redeem@example.com")

	_, err := svc.GrantPoints(user.ID, 20, models.TransactionEarnedReport, "report")
	require.NoError(t, err)

	_, err = svc.RedeemPoints(user.ID, 30)
	require.Error(t, err, "redeeming more than the balance must fail")

	tx, err := svc.RedeemPoints(user.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionRedeemed, tx.Type)

	balance, err := svc.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)
}

func TestGetLeaderboardOrdersByPoints(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestRewardService(t, gdb)

	alice := createTestUser(t, gdb, "alice@example.com")
	bob := createTestUser(t, gdb, "bob@example.com")

	_, err := svc.GrantPoints(alice.ID, 30, models.TransactionEarnedReport, "report")
	require.NoError(t, err)
	_, err = svc.GrantPoints(bob.ID, 50, models.TransactionEarnedCollect, "collect")
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, bob.ID, entries[0].UserID)
	assert.Equal(t, 50, entries[0].Points)
	assert.Equal(t, alice.ID, entries[1].UserID)
}
