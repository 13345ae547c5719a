package document

import "time"

// Document is a file attached to a lead. Rows are owned by the lead and
// physically removed (row and blob) when the lead is deleted.
type Document struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	LeadID    int64     `gorm:"column:lead_id;index" json:"lead_id"`
	UUID      string    `gorm:"column:uuid" json:"uuid"`
	Name      string    `gorm:"column:name" json:"name"`
	FileName  string    `gorm:"column:file_name" json:"file_name"`
	FilePath  string    `gorm:"column:file_path" json:"-"`   // relative disk path
	FileURL   string    `gorm:"column:file_url" json:"original_url"`
	MimeType  string    `gorm:"column:mime_type" json:"mime_type"`
	Size      int64     `gorm:"column:size" json:"size"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
