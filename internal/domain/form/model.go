package form

import (
	"time"

	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/event"
	"github.com/comexhub/comex-go/internal/domain/user"
)

// Form is one submitted document of a given form type under an event.
//
// Approval status is never stored; it is recomputed from the per-role
// flags on every read. The Version column guards every mutation with an
// optimistic lock.
type Form struct {
	ID       uint              `gorm:"primaryKey" json:"id"`
	FormType approval.FormType `gorm:"size:40;not null;index" json:"form_type"`
	EventID  uint              `gorm:"not null;index" json:"event_id"`
	OwnerID  uint              `gorm:"not null;index" json:"owner_id"`
	Title    string            `gorm:"size:200;not null" json:"title"`
	Body     string            `gorm:"type:text" json:"body"`

	IsCommex          bool       `gorm:"default:false" json:"is_commex"`
	CommexApproverID  *uint      `json:"commex_approver_id"`
	CommexApproveDate *time.Time `json:"commex_approve_date"`

	IsDean          bool       `gorm:"default:false" json:"is_dean"`
	DeanApproverID  *uint      `json:"dean_approver_id"`
	DeanApproveDate *time.Time `json:"dean_approve_date"`

	IsAsd          bool       `gorm:"default:false" json:"is_asd"`
	AsdApproverID  *uint      `json:"asd_approver_id"`
	AsdApproveDate *time.Time `json:"asd_approve_date"`

	IsAd          bool       `gorm:"default:false" json:"is_ad"`
	AdApproverID  *uint      `json:"ad_approver_id"`
	AdApproveDate *time.Time `json:"ad_approve_date"`

	Version uint `gorm:"not null;default:0" json:"version"`

	Owner     user.User   `gorm:"foreignKey:OwnerID" json:"owner"`
	Event     event.Event `gorm:"foreignKey:EventID" json:"event"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Flags projects the persisted per-role booleans into the engine's shape.
func (f *Form) Flags() approval.Flags {
	return approval.Flags{
		ComEx: f.IsCommex,
		Dean:  f.IsDean,
		ASD:   f.IsAsd,
		AD:    f.IsAd,
	}
}

// RoleColumns maps a reviewer role to its flag, approver and date column
// names, used for conditional single-row updates.
func RoleColumns(r approval.Role) (flag, approver, date string, ok bool) {
	switch r {
	case approval.RoleComEx:
		return "is_commex", "commex_approver_id", "commex_approve_date", true
	case approval.RoleDean:
		return "is_dean", "dean_approver_id", "dean_approve_date", true
	case approval.RoleASD:
		return "is_asd", "asd_approver_id", "asd_approve_date", true
	case approval.RoleAD:
		return "is_ad", "ad_approver_id", "ad_approve_date", true
	}
	return "", "", "", false
}
