package remark

import (
	"time"

	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/user"
)

// Remark is one revision note left by a reviewer when rejecting a form.
// Entries are append-only: no update, no delete.
//
// Lookups filter on (form_type, form_id) together because form numbering
// in the legacy data is only unique per form type; the uuid primary key
// keeps each entry globally unique regardless.
type Remark struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	FormType  approval.FormType `gorm:"size:40;not null;index:idx_remarks_form" json:"form_type"`
	FormID    uint              `gorm:"not null;index:idx_remarks_form" json:"form_id"`
	Role      approval.Role     `gorm:"size:20;not null" json:"role"`
	Remark    string            `gorm:"type:text;not null" json:"remark"`
	AuthorID  uint              `gorm:"not null" json:"author_id"`
	Author    user.User         `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time         `json:"created_at"`
}

func (Remark) TableName() string {
	return "form_remarks"
}
