package repository

import (
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetAllUsers() ([]user.User, error)
	ListUsersPaging(page, limit int) ([]user.User, error)
	GetUserByID(id uint) (user.User, error)
	GetUserByUsername(username string) (user.User, error)
	SaveUser(u *user.User) error
	DeleteUser(id uint) error
	SetReviewerRole(id uint, role approval.Role) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) GetAllUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Order("u_id").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) ListUsersPaging(page, limit int) ([]user.User, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}

	var users []user.User
	offset := (page - 1) * limit
	err := r.db.Offset(offset).Limit(limit).Order("u_id").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) GetUserByID(id uint) (user.User, error) {
	var u user.User
	err := r.db.Where("u_id = ?", id).First(&u).Error
	return u, err
}

func (r *DBUserRepo) GetUserByUsername(username string) (user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	return u, err
}

func (r *DBUserRepo) SaveUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return r.db.Where("u_id = ?", id).Delete(&user.User{}).Error
}

func (r *DBUserRepo) SetReviewerRole(id uint, role approval.Role) error {
	return r.db.Model(&user.User{}).Where("u_id = ?", id).
		Update("reviewer_role", role).Error
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{db: tx}
}
