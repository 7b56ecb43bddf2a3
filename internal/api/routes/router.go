package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comexhub/comex-go/internal/api/handlers"
	"github.com/comexhub/comex-go/internal/api/middleware"
	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/config"
	"github.com/comexhub/comex-go/internal/cron"
	"github.com/comexhub/comex-go/internal/notify"
	"github.com/comexhub/comex-go/internal/repository"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	flowCfg, err := approval.LoadFlowConfig(config.FlowConfigPath)
	if err != nil {
		log.Fatalf("Failed to load flow config: %v", err)
	}
	resolver := approval.NewResolver(flowCfg)
	hub := notify.NewHub()

	repos := repository.NewRepositories(db)
	services := application.New(repos, resolver, hub)
	h := handlers.New(services, hub, r)

	cron.StartCleanupTask(services.Audit, config.AuditRetentionDays)

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)
	r.GET("/auth/status", middleware.JWTAuthMiddleware(), handlers.AuthStatusHandler)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/notifications", h.Notify.Stream)

		events := auth.Group("/events")
		{
			events.GET("", h.Event.GetEvents)
			events.GET("/:id", h.Event.GetEventByID)
			events.GET("/:id/forms", h.Event.ListEventForms)
			events.POST("", h.Event.CreateEvent)
			events.PUT("/:id", h.Event.UpdateEvent)
			events.DELETE("/:id", middleware.Admin(), h.Event.DeleteEvent)
		}

		forms := auth.Group("/forms")
		{
			forms.POST("", h.Form.SubmitForm)
			forms.GET("/my", h.Form.GetMyForms)
			forms.GET("/inbox", middleware.Reviewer(), h.Form.GetInbox)
			forms.GET("/:form_type/:id", h.Form.GetForm)
			forms.PUT("/:form_type/:id", h.Form.UpdateForm)
			forms.PUT("/:form_type/:id/approve", middleware.Reviewer(), h.Form.Approve)
			forms.PUT("/:form_type/:id/reject", middleware.Reviewer(), h.Form.Reject)
			forms.GET("/:form_type/:id/remarks", h.Form.ListRemarks)
		}

		audit := auth.Group("/audit/logs")
		{
			audit.GET("", middleware.Admin(), h.Audit.GetAuditLogs)
		}

		users := auth.Group("/users")
		{
			users.GET("", middleware.Admin(), h.User.GetUsers)
			users.GET("/:id", h.User.GetUserByID)
			users.PUT("/:id", h.User.UpdateUser)
			users.PUT("/:id/reviewer-role", middleware.Admin(), h.User.AssignReviewerRole)
			users.DELETE("/:id", middleware.Admin(), h.User.DeleteUser)
		}
	}
}
