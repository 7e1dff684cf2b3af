package audit

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/inklab/studio-manager/internal/models"
)

// StartRetention avvia il prune notturno dei log più vecchi della
// retention configurata. Ritorna il cron per lo Stop in shutdown.
func StartRetention(db *gorm.DB, retentionDays int) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 4 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		res := db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
		if res.Error != nil {
			log.Printf("audit retention prune failed: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("audit retention: pruned %d entries", res.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("audit retention not scheduled: %v", err)
		return c
	}

	c.Start()
	return c
}
