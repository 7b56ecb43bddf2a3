package cron

import (
	"log"
	"time"

	"github.com/comexhub/comex-go/internal/application"
)

// StartCleanupTask prunes old audit logs once at startup and then daily.
func StartCleanupTask(auditService *application.AuditService, retentionDays int) {
	go func() {
		log.Printf("Starting background cleanup task (retention: %d days)", retentionDays)

		if err := auditService.CleanupOldLogs(retentionDays); err != nil {
			log.Printf("Failed to cleanup old audit logs: %v", err)
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("Running scheduled audit log cleanup...")
			if err := auditService.CleanupOldLogs(retentionDays); err != nil {
				log.Printf("Failed to cleanup old audit logs: %v", err)
			}
		}
	}()
}
