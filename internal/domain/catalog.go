// Package domain defines the persistence models for the landing site:
// catalog content authored in the back-office, downloadable documents,
// contact requests and the singleton configuration rows. These types are
// mapped with GORM and shared by the repository and service layers.
package domain

// Feature is a product advantage shown on the landing page.
type Feature struct {
	ID          uint   `json:"id"          gorm:"primaryKey"`
	Title       string `json:"title"       gorm:"type:varchar(100);not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Icon        string `json:"icon"        gorm:"type:varchar(50);not null;default:'check-circle'"`
	Order       int    `json:"order"       gorm:"column:sort_order;not null;default:0;index"`
	IsActive    bool   `json:"is_active"   gorm:"not null;index"`
}

// TableName returns the database table name for Feature.
func (Feature) TableName() string { return "features" }

// SpecificationGroup groups technical specifications (mechanics, power, optics…).
type SpecificationGroup struct {
	ID    uint   `json:"id"    gorm:"primaryKey"`
	Name  string `json:"name"  gorm:"type:varchar(100);not null"`
	Order int    `json:"order" gorm:"column:sort_order;not null;default:0;index"`

	// Specifications are cascade-deleted with their group.
	Specifications []Specification `json:"specifications" gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for SpecificationGroup.
func (SpecificationGroup) TableName() string { return "specification_groups" }

// Specification is a single "parameter: value" row of the technical sheet.
type Specification struct {
	ID      uint   `json:"id"       gorm:"primaryKey"`
	GroupID uint   `json:"group_id" gorm:"not null;index"`
	Name    string `json:"name"     gorm:"type:varchar(150);not null"`
	Value   string `json:"value"    gorm:"type:varchar(100);not null"`
	Order   int    `json:"order"    gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the database table name for Specification.
func (Specification) TableName() string { return "specifications" }

// String renders the specification as "name: value".
func (s Specification) String() string { return s.Name + ": " + s.Value }

// GalleryImage is an image shown in the gallery section. ImagePath is a
// storage key relative to the media root.
type GalleryImage struct {
	ID          uint   `json:"id"          gorm:"primaryKey"`
	Title       string `json:"title"       gorm:"type:varchar(100);not null"`
	ImagePath   string `json:"image_path"  gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`
	Order       int    `json:"order"       gorm:"column:sort_order;not null;default:0;index"`
	IsActive    bool   `json:"is_active"   gorm:"not null;index"`
}

// TableName returns the database table name for GalleryImage.
func (GalleryImage) TableName() string { return "gallery_images" }

// Software module icons accepted by the landing templates.
var SoftwareModuleIcons = map[string]string{
	"cpu":       "Процессор",
	"eye":       "Зрение/Трекинг",
	"crosshair": "Наведение",
	"video":     "Видео/Стриминг",
	"settings":  "Настройки",
	"chip":      "Контроллер",
	"wifi":      "Связь",
	"terminal":  "Терминал",
}

// SoftwareModule describes a functional block of the onboard software.
type SoftwareModule struct {
	ID          uint   `json:"id"           gorm:"primaryKey"`
	Title       string `json:"title"        gorm:"type:varchar(100);not null"`
	Icon        string `json:"icon"         gorm:"type:varchar(50);not null;default:'cpu'"`
	Description string `json:"description"  gorm:"type:text;not null"`
	TechDetails string `json:"tech_details" gorm:"type:text"`
	Order       int    `json:"order"        gorm:"column:sort_order;not null;default:0;index"`
	IsActive    bool   `json:"is_active"    gorm:"not null;index"`
}

// TableName returns the database table name for SoftwareModule.
func (SoftwareModule) TableName() string { return "software_modules" }

// HardwareInterface is a hardware interaction row (bus, protocol, port…).
type HardwareInterface struct {
	ID       uint   `json:"id"        gorm:"primaryKey"`
	Name     string `json:"name"      gorm:"type:varchar(100);not null"`
	Value    string `json:"value"     gorm:"type:varchar(200);not null"`
	Order    int    `json:"order"     gorm:"column:sort_order;not null;default:0;index"`
	IsActive bool   `json:"is_active" gorm:"not null;index"`
}

// TableName returns the database table name for HardwareInterface.
func (HardwareInterface) TableName() string { return "hardware_interfaces" }

// Development plan statuses.
const (
	PlanPlanned    = "planned"
	PlanInProgress = "in_progress"
	PlanCompleted  = "completed"
)

// DevelopmentPlan is a roadmap item of the software section.
type DevelopmentPlan struct {
	ID          uint   `json:"id"          gorm:"primaryKey"`
	Title       string `json:"title"       gorm:"type:varchar(200);not null"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status"      gorm:"type:varchar(20);not null;default:'planned';check:status IN ('planned','in_progress','completed')"`
	Order       int    `json:"order"       gorm:"column:sort_order;not null;default:0;index"`
	IsActive    bool   `json:"is_active"   gorm:"not null;index"`
}

// TableName returns the database table name for DevelopmentPlan.
func (DevelopmentPlan) TableName() string { return "development_plans" }

// StatusLabel returns the human-readable status.
func (p DevelopmentPlan) StatusLabel() string {
	switch p.Status {
	case PlanInProgress:
		return "В разработке"
	case PlanCompleted:
		return "Реализовано"
	default:
		return "Запланировано"
	}
}
