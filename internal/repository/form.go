package repository

import (
	"time"

	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	Create(f *form.Form) error
	FindByKey(formType approval.FormType, id uint) (*form.Form, error)
	FindByOwnerID(ownerID uint) ([]form.Form, error)
	FindByEventID(eventID uint) ([]form.Form, error)
	FindIncomplete() ([]form.Form, error)

	// ApplyApproval sets a role's flag, approver and date in one
	// conditional UPDATE. The row must still carry the expected version
	// and a false flag; the caller inspects the affected-row count to
	// tell a lost race from success.
	ApplyApproval(formType approval.FormType, id, version uint, role approval.Role, approverID uint, when time.Time) (int64, error)

	// BumpVersion advances the optimistic-lock counter without touching
	// flags (used by reject so concurrent approves fail cleanly).
	BumpVersion(formType approval.FormType, id, version uint) (int64, error)

	// SaveRevision persists owner edits and clears every collected
	// signature, conditional on the expected version.
	SaveRevision(f *form.Form, version uint) (int64, error)

	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{db: db}
}

func (r *DBFormRepo) Create(f *form.Form) error {
	return r.db.Create(f).Error
}

func (r *DBFormRepo) FindByKey(formType approval.FormType, id uint) (*form.Form, error) {
	var f form.Form
	err := r.db.Preload("Owner").Preload("Event").
		Where("form_type = ?", formType).
		First(&f, id).Error
	return &f, err
}

func (r *DBFormRepo) FindByOwnerID(ownerID uint) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("owner_id = ?", ownerID).
		Preload("Owner").Preload("Event").
		Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) FindByEventID(eventID uint) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("event_id = ?", eventID).
		Preload("Owner").
		Order("created_at desc").Find(&forms).Error
	return forms, err
}

// FindIncomplete returns forms still missing at least one signature.
// Which of those actually sit in a given reviewer's inbox is decided by
// the engine, not by this query.
func (r *DBFormRepo) FindIncomplete() ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("NOT (is_commex AND is_dean AND is_asd AND is_ad)").
		Preload("Owner").Preload("Event").
		Order("created_at asc").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) ApplyApproval(formType approval.FormType, id, version uint, role approval.Role, approverID uint, when time.Time) (int64, error) {
	flagCol, approverCol, dateCol, ok := form.RoleColumns(role)
	if !ok {
		return 0, gorm.ErrInvalidField
	}

	res := r.db.Model(&form.Form{}).
		Where("id = ? AND form_type = ? AND version = ? AND "+flagCol+" = false", id, formType, version).
		Updates(map[string]interface{}{
			flagCol:     true,
			approverCol: approverID,
			dateCol:     when,
			"version":   gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) BumpVersion(formType approval.FormType, id, version uint) (int64, error) {
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND form_type = ? AND version = ?", id, formType, version).
		Update("version", gorm.Expr("version + 1"))
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) SaveRevision(f *form.Form, version uint) (int64, error) {
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND version = ?", f.ID, version).
		Updates(map[string]interface{}{
			"title":               f.Title,
			"body":                f.Body,
			"is_commex":           false,
			"commex_approver_id":  nil,
			"commex_approve_date": nil,
			"is_dean":             false,
			"dean_approver_id":    nil,
			"dean_approve_date":   nil,
			"is_asd":              false,
			"asd_approver_id":     nil,
			"asd_approve_date":    nil,
			"is_ad":               false,
			"ad_approver_id":      nil,
			"ad_approve_date":     nil,
			"version":             gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{db: tx}
}
