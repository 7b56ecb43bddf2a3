package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/internal/api/middleware"
	"github.com/comexhub/comex-go/internal/api/routes"
	"github.com/comexhub/comex-go/internal/config"
	"github.com/comexhub/comex-go/internal/config/db"
	"github.com/comexhub/comex-go/internal/domain/audit"
	"github.com/comexhub/comex-go/internal/domain/event"
	"github.com/comexhub/comex-go/internal/domain/form"
	"github.com/comexhub/comex-go/internal/domain/remark"
	"github.com/comexhub/comex-go/internal/domain/user"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&user.User{},
		&event.Event{},
		&form.Form{},
		&remark.Remark{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, db.DB)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
