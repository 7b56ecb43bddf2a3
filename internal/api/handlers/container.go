package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/notify"
)

type Handlers struct {
	Audit  *AuditHandler
	User   *UserHandler
	Event  *EventHandler
	Form   *FormHandler
	Notify *NotifyHandler
	Router *gin.Engine
}

func New(svc *application.Services, hub *notify.Hub, router *gin.Engine) *Handlers {
	return &Handlers{
		Audit:  NewAuditHandler(svc.Audit),
		User:   NewUserHandler(svc.User),
		Event:  NewEventHandler(svc.Event, svc.Form),
		Form:   NewFormHandler(svc.Form, svc.Remark, svc.Audit),
		Notify: NewNotifyHandler(hub),
		Router: router,
	}
}
