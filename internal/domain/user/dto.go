package user

type CreateUserInput struct {
	Username     string  `json:"username" binding:"required,min=3,max=50" example:"jdcruz"`
	Password     string  `json:"password" binding:"required,min=6" example:"password123"`
	Email        *string `json:"email" binding:"omitempty,email" example:"jdcruz@example.edu"`
	FullName     *string `json:"full_name" example:"Juan Dela Cruz"`
	RoleCategory string  `json:"role_category" binding:"omitempty,oneof=student faculty organization" example:"student"`
}

type UpdateUserInput struct {
	OldPassword *string `json:"old_password"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
	Email       *string `json:"email" binding:"omitempty,email"`
	FullName    *string `json:"full_name"`
}

// AssignRoleInput attaches a user to a reviewer office. Admin only.
type AssignRoleInput struct {
	ReviewerRole string `json:"reviewer_role" binding:"required,oneof=commex dean asd ad"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
