package application

import (
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/notify"
	"github.com/comexhub/comex-go/internal/repository"
)

type Services struct {
	Audit  *AuditService
	User   *UserService
	Event  *EventService
	Form   *FormService
	Remark *RemarkService
}

func New(repos *repository.Repos, resolver *approval.Resolver, notifier notify.Notifier) *Services {
	return &Services{
		Audit:  NewAuditService(repos),
		User:   NewUserService(repos),
		Event:  NewEventService(repos),
		Form:   NewFormService(repos, resolver, notifier),
		Remark: NewRemarkService(repos),
	}
}
