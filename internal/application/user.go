package application

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/comexhub/comex-go/internal/api/middleware"
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/user"
	"github.com/comexhub/comex-go/internal/repository"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidRole         = errors.New("unknown reviewer role")
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
	}
}

func (s *UserService) RegisterUser(input user.CreateUserInput) error {
	_, err := s.Repos.User.GetUserByUsername(input.Username)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if err == nil {
		return ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashFailure
	}

	usr := user.User{
		Username:     input.Username,
		Password:     string(hashed),
		Email:        input.Email,
		FullName:     input.FullName,
		RoleCategory: approval.CategoryStudent,
		Status:       user.UserStatusActive,
	}
	if input.RoleCategory != "" {
		category, ok := approval.ParseRoleCategory(input.RoleCategory)
		if !ok {
			return errors.New("unknown role category")
		}
		usr.RoleCategory = category
	}
	return s.Repos.User.SaveUser(&usr)
}

func (s *UserService) LoginUser(username, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByUsername(username)
	if err != nil {
		return user.User{}, "", errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return user.User{}, "", errors.New("invalid credentials")
	}

	token, err := middleware.GenerateToken(&usr, 24*time.Hour)
	if err != nil {
		return user.User{}, "", err
	}

	return usr, token, nil
}

func (s *UserService) ListUsers() ([]user.User, error) {
	return s.Repos.User.GetAllUsers()
}

func (s *UserService) ListUserByPaging(page, limit int) ([]user.User, error) {
	return s.Repos.User.ListUsersPaging(page, limit)
}

func (s *UserService) GetUserByID(id uint) (user.User, error) {
	return s.Repos.User.GetUserByID(id)
}

func (s *UserService) UpdateUser(id uint, input user.UpdateUserInput) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return user.User{}, ErrUserNotFound
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return user.User{}, ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(*input.OldPassword)); err != nil {
			return user.User{}, ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrPasswordHashFailure
		}
		usr.Password = string(hashed)
	}
	if input.Email != nil {
		usr.Email = input.Email
	}
	if input.FullName != nil {
		usr.FullName = input.FullName
	}

	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (s *UserService) DeleteUser(id uint) error {
	return s.Repos.User.DeleteUser(id)
}

// AssignReviewerRole attaches a user to a reviewer office. Admin only;
// the handler enforces that.
func (s *UserService) AssignReviewerRole(id uint, roleStr string) (user.User, error) {
	role, ok := approval.ParseRole(roleStr)
	if !ok {
		return user.User{}, ErrInvalidRole
	}
	if err := s.Repos.User.SetReviewerRole(id, role); err != nil {
		return user.User{}, err
	}
	return s.Repos.User.GetUserByID(id)
}
