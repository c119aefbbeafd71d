package services

import (
	"fmt"
	"log"
	"net/http"

	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
)

// DefaultTransactionWindow bounds the transaction listing shown to users.
const DefaultTransactionWindow = 10

type RewardService interface {
	GrantPoints(userID uint, amount int, transactionType string, description string) (*models.Transaction, error)
	ComputeBalance(userID uint) (int, error)
	GetRewardTransactions(userID uint) ([]models.Transaction, error)
	RedeemPoints(userID uint, amount int) (*models.Transaction, error)
	GetLeaderboard(limit int) ([]models.LeaderboardEntry, error)
}

type rewardService struct {
	Config              *config.Config
	ledgerRepo          db.LedgerRepository
	notificationService NotificationService
}

func NewRewardService(ledgerRepo db.LedgerRepository, notificationService NotificationService, conf *config.Config) RewardService {
	return &rewardService{
		Config:              conf,
		ledgerRepo:          ledgerRepo,
		notificationService: notificationService,
	}
}

// GrantPoints appends a ledger entry and notifies the user. The ledger write
// and the counter update are atomic; the notification is not, and a failure
// there is logged rather than propagated.
func (s *rewardService) GrantPoints(userID uint, amount int, transactionType string, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apiError.ErrValidation
	}
	if !models.IsValidTransactionType(transactionType) {
		return nil, apiError.ErrValidation
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
	}
	created, err := s.ledgerRepo.CreateTransaction(transaction)
	if err != nil {
		return nil, apiError.ErrPersistence
	}

	if transaction.IsEarning() {
		message := fmt.Sprintf("You have earned %d points for reporting wastes!", amount)
		if transactionType == models.TransactionEarnedCollect {
			message = fmt.Sprintf("You have earned %d points for collecting wastes!", amount)
		}
		if _, err := s.notificationService.Notify(userID, message, models.NotificationTypeReward); err != nil {
			log.Printf("error notifying user %d of grant: %v", userID, err)
		}
	}

	return created, nil
}

// ComputeBalance folds the user's full transaction history, adding earning
// entries and subtracting the rest, clamped at zero. The full history is
// summed rather than the recent window used for display, so the balance is
// the true lifetime total.
func (s *rewardService) ComputeBalance(userID uint) (int, error) {
	transactions, err := s.ledgerRepo.GetTransactionsByUserID(userID)
	if err != nil {
		log.Printf("ComputeBalance error for user %d: %v", userID, err)
		return 0, apiError.ErrPersistence
	}

	balance := 0
	for _, t := range transactions {
		balance += t.SignedAmount()
	}
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

// GetRewardTransactions returns the most recent entries for display,
// newest first.
func (s *rewardService) GetRewardTransactions(userID uint) ([]models.Transaction, error) {
	transactions, err := s.ledgerRepo.GetRecentTransactionsByUserID(userID, DefaultTransactionWindow)
	if err != nil {
		log.Printf("GetRewardTransactions error for user %d: %v", userID, err)
		return nil, apiError.ErrPersistence
	}
	return transactions, nil
}

// RedeemPoints spends part of the balance as a redeemed ledger entry.
func (s *rewardService) RedeemPoints(userID uint, amount int) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apiError.ErrValidation
	}

	balance, err := s.ComputeBalance(userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, apiError.New("insufficient points balance", http.StatusBadRequest)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionRedeemed,
		Amount:      amount,
		Description: fmt.Sprintf("Redeemed %d points", amount),
	}
	created, err := s.ledgerRepo.CreateTransaction(transaction)
	if err != nil {
		return nil, apiError.ErrPersistence
	}

	message := fmt.Sprintf("You have redeemed %d points!", amount)
	if _, err := s.notificationService.Notify(userID, message, models.NotificationTypeReward); err != nil {
		log.Printf("error notifying user %d of redemption: %v", userID, err)
	}

	return created, nil
}

func (s *rewardService) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rewards, err := s.ledgerRepo.GetTopRewards(limit)
	if err != nil {
		log.Printf("GetLeaderboard error: %v", err)
		return nil, apiError.ErrPersistence
	}

	entries := make([]models.LeaderboardEntry, 0, len(rewards))
	for _, r := range rewards {
		entries = append(entries, models.LeaderboardEntry{
			UserID:   r.UserID,
			Fullname: r.User.Fullname,
			Points:   r.Points,
		})
	}
	return entries, nil
}
