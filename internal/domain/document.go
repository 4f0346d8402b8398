package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// AllowedDocumentExtensions lists the file types accepted for upload.
var AllowedDocumentExtensions = []string{"pdf", "doc", "docx", "xls", "xlsx"}

// DocumentCategory groups downloadable documents (technical documentation,
// certificates, presentations).
//
// Fields:
//   - Slug: unique URL identifier.
//   - Icon: Lucide icon name used by the templates.
//   - Documents: cascade-deleted with the category.
type DocumentCategory struct {
	ID    uint   `json:"id"    gorm:"primaryKey"`
	Name  string `json:"name"  gorm:"type:varchar(100);not null"`
	Slug  string `json:"slug"  gorm:"type:varchar(50);not null;uniqueIndex"`
	Icon  string `json:"icon"  gorm:"type:varchar(50);not null;default:'file-text'"`
	Order int    `json:"order" gorm:"column:sort_order;not null;default:0;index"`

	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for DocumentCategory.
func (DocumentCategory) TableName() string { return "document_categories" }

// Document is a downloadable file.
//
// Fields:
//   - FilePath: storage key of the backing object.
//   - FileName: original file name sent in Content-Disposition.
//   - FileSize: size in bytes captured at upload time.
//   - DownloadCount: mutated only by the download path, one per download.
//   - IsActive: inactive documents are hidden and not downloadable.
type Document struct {
	ID            uint      `json:"id"             gorm:"primaryKey"`
	CategoryID    uint      `json:"category_id"    gorm:"not null;index"`
	Title         string    `json:"title"          gorm:"type:varchar(200);not null"`
	Description   string    `json:"description"    gorm:"type:text"`
	FilePath      string    `json:"-"              gorm:"type:varchar(255);not null"`
	FileName      string    `json:"file_name"      gorm:"type:varchar(255);not null"`
	FileSize      int64     `json:"file_size"      gorm:"not null;default:0"`
	UploadedAt    time.Time `json:"uploaded_at"    gorm:"not null;index"`
	DownloadCount int64     `json:"download_count" gorm:"not null;default:0"`
	IsActive      bool      `json:"is_active"      gorm:"not null;index"`

	Category *DocumentCategory `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the database table name for Document.
func (Document) TableName() string { return "documents" }

// Extension returns the lower-case extension of the stored file without the
// leading dot, or "" when the document has no file.
func (d Document) Extension() string {
	name := d.FileName
	if name == "" {
		name = d.FilePath
	}
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

// SizeLabel returns the human-readable file size, or "—" when there is no file.
func (d Document) SizeLabel() string {
	if d.FilePath == "" {
		return "—"
	}
	return HumanFileSize(d.FileSize)
}

// IsAllowedDocumentExtension reports whether ext (with or without a dot,
// any case) may be uploaded.
func IsAllowedDocumentExtension(ext string) bool {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, a := range AllowedDocumentExtensions {
		if a == ext {
			return true
		}
	}
	return false
}

var fileSizeUnits = []string{"Б", "КБ", "МБ", "ГБ"}

// HumanFileSize formats size in binary units with one decimal place,
// e.g. 1536 → "1.5 КБ". Anything past gigabytes is expressed in ТБ.
func HumanFileSize(size int64) string {
	v := float64(size)
	for _, unit := range fileSizeUnits {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f ТБ", v)
}
