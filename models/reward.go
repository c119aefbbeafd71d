package models

// Reward is the per-user running points total kept alongside the ledger.
// It is updated in the same database transaction as the ledger entry and
// feeds the leaderboard.
type Reward struct {
	Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	Points int  `json:"points"`
	User   User `json:"-" gorm:"foreignKey:UserID"`
}

type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Fullname string `json:"fullname"`
	Points   int    `json:"points"`
}
