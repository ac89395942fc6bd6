package domain

// User Model
type User struct {
	ID         uint    `gorm:"primaryKey" json:"-"`                 // Storage-assigned opaque id
	UserID     int     `gorm:"uniqueIndex;not null" json:"user_id"` // Public user id, allocated sequentially
	UserEmail  string  `gorm:"uniqueIndex;not null" json:"user_email"`
	UserPass   string  `json:"user_pass"` // Stored as plaintext for compatibility with existing records
	UserName   string  `json:"user_name"`
	Wallet     float64 `gorm:"not null;default:0" json:"wallet"`
	ProfileImg int     `gorm:"default:1" json:"profile_img"`
}
