package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
)

// Log categories, numbered as the panel expects them.
const (
	CategoryError    = 1 // unexpected internal fault
	CategorySecurity = 2 // denied mutation attempt
)

// Entry is one audit-trail row. Writes are best effort: a failing audit
// insert is logged and never fails the operation that produced it.
type Entry struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Event     string    `gorm:"column:event" json:"event"`
	UserID    *int64    `gorm:"column:user_id" json:"user_id"`
	Category  int       `gorm:"column:category" json:"category"`
	Detail    string    `gorm:"column:detail" json:"detail"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Log appends an audit entry. detail may be any JSON-encodable value; the
// raw payload of a denied request, or an error string.
func (r *Recorder) Log(ctx context.Context, event string, userID *int64, category int, detail any) {
	encoded, err := json.Marshal(detail)
	if err != nil {
		encoded = []byte(`"unencodable detail"`)
	}

	entry := &Entry{
		Event:    event,
		UserID:   userID,
		Category: category,
		Detail:   string(encoded),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("audit_write_failed event=%s error=%v", event, err)
	}
	log.Printf("audit event=%s category=%d detail=%s", event, category, encoded)
}
