package audit

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records every decision and administrative mutation with
// before/after snapshots for traceability.
type AuditLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	Action       string         `gorm:"size:64;not null;index" json:"action"`
	ResourceType string         `gorm:"size:64;not null;index" json:"resource_type"`
	ResourceID   string         `gorm:"size:64" json:"resource_id"`
	OldData      datatypes.JSON `gorm:"type:jsonb" json:"old_data"`
	NewData      datatypes.JSON `gorm:"type:jsonb" json:"new_data"`
	IPAddress    string         `gorm:"size:64" json:"ip_address"`
	UserAgent    string         `gorm:"size:255" json:"user_agent"`
	Description  string         `gorm:"type:text" json:"description"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
