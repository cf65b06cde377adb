package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/voxpop-app/voxpop/pkg/internal/database"
	"gorm.io/gorm"
)

// DoAutoDatabaseCleanup hard-deletes rows that were soft-deleted more than a
// month ago across every auto-maintained table.
func DoAutoDatabaseCleanup(source *gorm.DB) {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := source.Unscoped().Where("deleted_at < ?", deadline).Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
