package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User   UserRepo
	Event  EventRepo
	Form   FormRepo
	Remark RemarkRepo
	Audit  AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:   NewUserRepo(db),
		Event:  NewEventRepo(db),
		Form:   NewFormRepo(db),
		Remark: NewRemarkRepo(db),
		Audit:  NewAuditRepo(db),
		db:     db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:   r.User.WithTx(tx),
		Event:  r.Event.WithTx(tx),
		Form:   r.Form.WithTx(tx),
		Remark: r.Remark.WithTx(tx),
		Audit:  r.Audit.WithTx(tx),
		db:     tx,
	}
}

// ExecTx runs fn inside a single database transaction. A container
// assembled without a database handle runs fn against itself.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
