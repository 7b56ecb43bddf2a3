package event

import (
	"time"

	"github.com/comexhub/comex-go/internal/domain/user"
)

// Event is an extension program activity. Every submitted form belongs to
// exactly one event.
type Event struct {
	EID         uint      `gorm:"primaryKey;column:e_id" json:"eid"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Venue       string    `gorm:"size:200" json:"venue"`
	Organizer   string    `gorm:"size:200" json:"organizer"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	Creator     user.User `gorm:"foreignKey:CreatedBy" json:"creator"`
	CreatedAt   time.Time `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}
