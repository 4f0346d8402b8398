package domain

import "time"

// SingletonID is the fixed primary key of every singleton configuration row.
const SingletonID uint = 1

// SiteSettings holds site-wide texts and contact details. Exactly one row
// exists: every save is forced to SingletonID.
type SiteSettings struct {
	ID              uint      `json:"-"                gorm:"primaryKey"`
	SiteTitle       string    `json:"site_title"       gorm:"type:varchar(200);not null"`
	SiteDescription string    `json:"site_description" gorm:"type:text;not null"`
	HeroTitle       string    `json:"hero_title"       gorm:"type:varchar(200);not null"`
	HeroSubtitle    string    `json:"hero_subtitle"    gorm:"type:text;not null"`
	AboutText       string    `json:"about_text"       gorm:"type:text"`
	TurretImage     string    `json:"turret_image"     gorm:"type:varchar(255)"`
	ContactEmail    string    `json:"contact_email"    gorm:"type:varchar(254);not null"`
	ContactPhone    string    `json:"contact_phone"    gorm:"type:varchar(30);not null"`
	ContactAddress  string    `json:"contact_address"  gorm:"type:text;not null"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for SiteSettings.
func (SiteSettings) TableName() string { return "site_settings" }

// DefaultSiteSettings returns the row created on first access.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:              SingletonID,
		SiteTitle:       "Арсенал",
		SiteDescription: "Роботизированная турель контрдроновой защиты",
		HeroTitle:       "АРСЕНАЛ",
		HeroSubtitle:    "Роботизированная турель ближней контрдроновой защиты",
		ContactEmail:    "npo.arsenal.info@mail.ru",
		ContactPhone:    "8-960-283-15-14",
		ContactAddress:  "Санкт-Петербург, п. Стрельна, ул. Фронтовая д.3",
	}
}

// SoftwarePlatform describes the software platform and architecture.
// Like SiteSettings it is a singleton pinned to SingletonID.
type SoftwarePlatform struct {
	ID           uint      `json:"-"             gorm:"primaryKey"`
	IntroText    string    `json:"intro_text"    gorm:"type:text;not null"`
	PlatformName string    `json:"platform_name" gorm:"type:varchar(100);not null"`
	Hardware     string    `json:"hardware"      gorm:"type:varchar(200);not null"`
	AppType      string    `json:"app_type"      gorm:"type:varchar(100);not null"`
	Languages    string    `json:"languages"     gorm:"type:varchar(200);not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for SoftwarePlatform.
func (SoftwarePlatform) TableName() string { return "software_platform" }

// DefaultSoftwarePlatform returns the row created on first access.
func DefaultSoftwarePlatform() SoftwarePlatform {
	return SoftwarePlatform{
		ID:           SingletonID,
		IntroText:    "Программное обеспечение обеспечивает автоматическое сопровождение воздушных целей и наведение двухосевой турели.",
		PlatformName: "Android 12 AOSP",
		Hardware:     "8-ядерный CPU, GPU Adreno",
		AppType:      "Монолитное Android-приложение (APK)",
		Languages:    "Scala, Java, C++ (NDK)",
	}
}
