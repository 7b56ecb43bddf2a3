package repository

import (
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/remark"
	"gorm.io/gorm"
)

// RemarkRepo is append-only: entries are never updated or deleted.
type RemarkRepo interface {
	Create(entry *remark.Remark) error
	ListByForm(formType approval.FormType, formID uint) ([]remark.Remark, error)
	WithTx(tx *gorm.DB) RemarkRepo
}

type DBRemarkRepo struct {
	db *gorm.DB
}

func NewRemarkRepo(db *gorm.DB) *DBRemarkRepo {
	return &DBRemarkRepo{db: db}
}

func (r *DBRemarkRepo) Create(entry *remark.Remark) error {
	return r.db.Create(entry).Error
}

// ListByForm filters on form type and id together; form numbering is only
// unique within a form type.
func (r *DBRemarkRepo) ListByForm(formType approval.FormType, formID uint) ([]remark.Remark, error) {
	var entries []remark.Remark
	err := r.db.Where("form_type = ? AND form_id = ?", formType, formID).
		Preload("Author").
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}

func (r *DBRemarkRepo) WithTx(tx *gorm.DB) RemarkRepo {
	if tx == nil {
		return r
	}
	return &DBRemarkRepo{db: tx}
}
