package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/inklab/studio-manager/internal/audit"
	"github.com/inklab/studio-manager/internal/config"
	dbpkg "github.com/inklab/studio-manager/internal/db"
	"github.com/inklab/studio-manager/internal/middleware"
	"github.com/inklab/studio-manager/internal/routes"
)

func main() {

	// .env assente in produzione: non è un errore.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	retention := audit.StartRetention(db, cfg.AuditRetentionDays)
	defer retention.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
