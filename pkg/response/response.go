package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	UID          uint   `json:"user_id"`
	Username     string `json:"username"`
	RoleCategory string `json:"role_category"`
	ReviewerRole string `json:"reviewer_role,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
}
