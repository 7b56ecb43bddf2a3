package repository

import (
	"github.com/comexhub/comex-go/internal/domain/event"
	"gorm.io/gorm"
)

type EventRepo interface {
	Create(e *event.Event) error
	FindAll() ([]event.Event, error)
	FindByID(id uint) (*event.Event, error)
	Save(e *event.Event) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) EventRepo
}

type DBEventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *DBEventRepo {
	return &DBEventRepo{db: db}
}

func (r *DBEventRepo) Create(e *event.Event) error {
	return r.db.Create(e).Error
}

func (r *DBEventRepo) FindAll() ([]event.Event, error) {
	var events []event.Event
	err := r.db.Preload("Creator").Order("start_date desc").Find(&events).Error
	return events, err
}

func (r *DBEventRepo) FindByID(id uint) (*event.Event, error) {
	var e event.Event
	err := r.db.Preload("Creator").First(&e, "e_id = ?", id).Error
	return &e, err
}

func (r *DBEventRepo) Save(e *event.Event) error {
	return r.db.Save(e).Error
}

func (r *DBEventRepo) Delete(id uint) error {
	return r.db.Where("e_id = ?", id).Delete(&event.Event{}).Error
}

func (r *DBEventRepo) WithTx(tx *gorm.DB) EventRepo {
	if tx == nil {
		return r
	}
	return &DBEventRepo{db: tx}
}
