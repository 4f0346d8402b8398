package domain

import "time"

// Idempotency records the outcome of a previously accepted contact
// submission, keyed by (client_key, key). A retried submission carrying the
// same Idempotency-Key is answered from this row without storing a second
// request or sending a second notification.
type Idempotency struct {
	ID               string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	ClientKey        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_key,priority:1"`
	Key              string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_key,priority:2"`
	ContactRequestID uint      `gorm:"not null"`
	Status           int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt        time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
