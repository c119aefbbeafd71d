package models

import "strings"

const (
	TransactionEarnedReport  = "earned_report"
	TransactionEarnedCollect = "earned_collect"
	TransactionRedeemed      = "redeemed"
)

// Transaction is an immutable signed ledger entry. Amount stores the
// magnitude only; the sign is derived from Type.
type Transaction struct {
	Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Type        string `json:"type" gorm:"not null"`
	Amount      int    `json:"amount" gorm:"not null"`
	Description string `json:"description"`
}

// IsEarning reports whether the entry adds to the balance.
func (t *Transaction) IsEarning() bool {
	return strings.HasPrefix(t.Type, "earned")
}

// SignedAmount is Amount for earning types and -Amount otherwise.
func (t *Transaction) SignedAmount() int {
	if t.IsEarning() {
		return t.Amount
	}
	return -t.Amount
}

func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionEarnedReport, TransactionEarnedCollect, TransactionRedeemed:
		return true
	}
	return false
}
