package domain

import "time"

// AdminUser is a back-office operator allowed to triage contact requests and
// maintain site content. PasswordHash is a bcrypt hash.
type AdminUser struct {
	ID           uint      `json:"id"         gorm:"primaryKey"`
	Username     string    `json:"username"   gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string    `json:"email"      gorm:"type:varchar(254)"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(100);not null"`
	IsActive     bool      `json:"is_active"  gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for AdminUser.
func (AdminUser) TableName() string { return "admin_users" }
