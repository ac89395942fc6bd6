package domain

// Admin Model. Admins are provisioned out-of-band; the API only reads them.
type Admin struct {
	ID        uint   `gorm:"primaryKey" json:"-"` // Storage-assigned opaque id
	AdminID   string `gorm:"uniqueIndex;not null" json:"admin_id"`
	AdminPass string `json:"admin_pass"`
}
