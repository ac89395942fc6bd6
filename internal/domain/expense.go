package domain

// Expense Model. (user_id, transaction_no) is the composite public key;
// transaction numbers are a per-user sequence starting at 1 and are never
// reused, so deletions leave gaps.
type Expense struct {
	ID              uint    `gorm:"primaryKey" json:"-"`                        // Storage-assigned opaque id
	UserID          int     `gorm:"uniqueIndex:idx_user_txn" json:"user_id"`    // Foreign key to User.UserID
	TransactionNo   int     `gorm:"uniqueIndex:idx_user_txn" json:"transaction_no"`
	TransactionType string  `json:"transaction_type"`
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Date            string  `json:"date"` // Opaque date string, not parsed or validated
}
