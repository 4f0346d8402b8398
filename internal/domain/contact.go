package domain

import "time"

// MaxUserAgentLen caps the stored User-Agent length (in runes).
const MaxUserAgentLen = 500

// ContactRequest is a lead submitted through the public contact form.
//
// Rows are created exactly once per accepted submission and are immutable
// afterwards, except for IsProcessed and Notes which the back-office
// operator maintains. ConsentGiven is always true for stored rows; the
// intake pipeline refuses submissions without consent.
type ContactRequest struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(100);not null"`
	Email        string    `json:"email"         gorm:"type:varchar(254);not null;index"`
	Phone        string    `json:"phone"         gorm:"type:varchar(30)"`
	Company      string    `json:"company"       gorm:"type:varchar(200)"`
	Message      string    `json:"message"       gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"    gorm:"not null;index"`
	IsProcessed  bool      `json:"is_processed"  gorm:"not null;index"`
	Notes        string    `json:"notes"         gorm:"type:text"`
	ConsentGiven bool      `json:"consent_given" gorm:"not null"`
	ConsentDate  time.Time `json:"consent_date"  gorm:"not null"`
	IPAddress    *string   `json:"ip_address"    gorm:"type:varchar(45)"`
	UserAgent    string    `json:"user_agent"    gorm:"type:text"`
}

// TableName returns the database table name for ContactRequest.
func (ContactRequest) TableName() string { return "contact_requests" }

// String renders the request as "name — dd.mm.yyyy hh:mm".
func (c ContactRequest) String() string {
	return c.Name + " — " + c.CreatedAt.Format("02.01.2006 15:04")
}
