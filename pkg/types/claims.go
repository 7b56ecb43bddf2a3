package types

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/comexhub/comex-go/internal/approval"
)

// Claims is the resolved identity attached to every authenticated
// request. Services receive it explicitly; nothing below the API layer
// reads tokens.
type Claims struct {
	UserID       uint                  `json:"user_id"`
	Username     string                `json:"username"`
	RoleCategory approval.RoleCategory `json:"role_category"`
	ReviewerRole approval.Role         `json:"reviewer_role,omitempty"`
	IsAdmin      bool                  `json:"is_admin"`
	jwt.RegisteredClaims
}
