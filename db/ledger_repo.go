package db

import (
	"log"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/models"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	CreateTransaction(transaction *models.Transaction) (*models.Transaction, error)
	GetTransactionsByUserID(userID uint) ([]models.Transaction, error)
	GetRecentTransactionsByUserID(userID uint, limit int) ([]models.Transaction, error)
	GetRewardByUserID(userID uint) (*models.Reward, error)
	GetTopRewards(limit int) ([]models.Reward, error)
}

type ledgerRepo struct {
	DB *gorm.DB
}

func NewLedgerRepo(db *GormDB) LedgerRepository {
	return &ledgerRepo{db.DB}
}

// CreateTransaction appends a ledger entry and applies its signed amount to
// the user's reward counter inside one database transaction, so the counter
// cannot drift from the ledger.
func (l *ledgerRepo) CreateTransaction(transaction *models.Transaction) (*models.Transaction, error) {
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		var reward models.Reward
		err := tx.Where("user_id = ?", transaction.UserID).First(&reward).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			reward = models.Reward{UserID: transaction.UserID}
		}
		reward.Points += transaction.SignedAmount()
		return tx.Save(&reward).Error
	})
	if err != nil {
		log.Printf("CreateTransaction error: %v", err)
		return nil, errors.Wrap(err, "could not record transaction")
	}
	return transaction, nil
}

func (l *ledgerRepo) GetTransactionsByUserID(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := l.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch transactions")
	}
	return transactions, nil
}

func (l *ledgerRepo) GetRecentTransactionsByUserID(userID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := l.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch recent transactions")
	}
	return transactions, nil
}

// GetRewardByUserID returns a zero-valued counter when the user has no
// ledger activity yet.
func (l *ledgerRepo) GetRewardByUserID(userID uint) (*models.Reward, error) {
	var reward models.Reward
	err := l.DB.Where("user_id = ?", userID).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Reward{UserID: userID, Points: 0}, nil
		}
		return nil, errors.Wrap(err, "could not fetch reward")
	}
	return &reward, nil
}

func (l *ledgerRepo) GetTopRewards(limit int) ([]models.Reward, error) {
	var rewards []models.Reward
	err := l.DB.Preload("User").Order("points DESC").Limit(limit).Find(&rewards).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch leaderboard rewards")
	}
	return rewards, nil
}
