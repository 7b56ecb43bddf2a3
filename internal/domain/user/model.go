package user

import (
	"time"

	"github.com/comexhub/comex-go/internal/approval"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	UID      uint    `gorm:"primaryKey;column:u_id" json:"uid"`
	Username string  `gorm:"size:50;not null;unique" json:"username"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Email    *string `gorm:"size:100" json:"email"`
	FullName *string `gorm:"size:100" json:"full_name"`

	// RoleCategory classifies the user as a submitter (student, faculty,
	// organization). It drives the reviewer sequence of everything the
	// user submits.
	RoleCategory approval.RoleCategory `gorm:"size:20;not null;default:'student'" json:"role_category"`

	// ReviewerRole is set for users attached to a reviewer office
	// (commex, dean, asd, ad); empty for plain submitters.
	ReviewerRole approval.Role `gorm:"size:20;default:''" json:"reviewer_role"`

	IsAdmin   bool       `gorm:"default:false" json:"is_admin"`
	Status    UserStatus `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time  `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}
