package routes

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inklab/studio-manager/internal/audit"
	"github.com/inklab/studio-manager/internal/cache"
	"github.com/inklab/studio-manager/internal/config"
	dgiftcard "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/handlers"
	infraRepo "github.com/inklab/studio-manager/internal/infra/repository"
	"github.com/inklab/studio-manager/internal/middleware"
	"github.com/inklab/studio-manager/internal/timezone"
	ucAppointment "github.com/inklab/studio-manager/internal/usecase/appointment"
	ucConsent "github.com/inklab/studio-manager/internal/usecase/consent"
	ucGiftcard "github.com/inklab/studio-manager/internal/usecase/giftcard"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	giftCardRepo := infraRepo.NewGiftCardGormRepository(db)
	consentRepo := infraRepo.NewConsentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	loc := timezone.Location(cfg.StudioTimezone)
	codes := dgiftcard.NewCodeGenerator(rand.NewSource(time.Now().UnixNano()))
	statsCache := cache.New(cfg.RedisAddr, time.Minute)

	// ======================================================
	// 🧠 USE CASES — APPUNTAMENTI
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		scheduleRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		scheduleRepo,
	)

	// ======================================================
	// 🧠 USE CASES — GIFT CARD
	// ======================================================
	createDraftUC := ucGiftcard.NewCreateDraft(
		giftCardRepo,
		auditDispatcher,
		cfg.PublicBaseURL,
		cfg.GiftCardValidityDays,
		cfg.ClaimTokenTTLHours,
	)

	claimUC := ucGiftcard.NewClaimGiftCard(
		giftCardRepo,
		codes,
		auditDispatcher,
		cfg.PublicBaseURL,
	)

	claimSummaryUC := ucGiftcard.NewGetClaimSummary(giftCardRepo)

	completeUC := ucGiftcard.NewCompleteGiftCard(
		giftCardRepo,
		codes,
		auditDispatcher,
		cfg.GiftCardValidityDays,
	)

	renewUC := ucGiftcard.NewRenewGiftCard(
		giftCardRepo,
		auditDispatcher,
		cfg.GiftCardValidityDays,
		cfg.ClaimTokenTTLHours,
	)

	markUsedUC := ucGiftcard.NewMarkUsed(giftCardRepo, auditDispatcher)
	verifyUC := ucGiftcard.NewVerifyGiftCard(giftCardRepo)
	listGiftCardsUC := ucGiftcard.NewListGiftCards(giftCardRepo)

	// ======================================================
	// 🧠 USE CASES — CONSENSI
	// ======================================================
	submitConsentUC := ucConsent.NewSubmitConsent(consentRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	artistHandler := handlers.NewArtistHandler(db)
	roomHandler := handlers.NewRoomHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		loc,
	)

	giftCardAdminHandler := handlers.NewGiftCardAdminHandler(
		createDraftUC,
		completeUC,
		renewUC,
		markUsedUC,
		listGiftCardsUC,
		statsCache,
	)

	giftCardPublicHandler := handlers.NewGiftCardPublicHandler(
		claimSummaryUC,
		claimUC,
		verifyUC,
		statsCache,
	)

	consentHandler := handlers.NewConsentHandler(submitConsentUC, consentRepo)
	statsHandler := handlers.NewStatsHandler(giftCardRepo, statsCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PUBBLICA
		// ------------------------------
		api.GET("/gift-cards/claim/:token", giftCardPublicHandler.ClaimSummary)
		api.POST("/gift-cards/claim/:token/finalize", giftCardPublicHandler.Finalize)
		api.GET("/gift-cards/verify/:code", giftCardPublicHandler.Verify)

		api.POST("/consenso/tatuaggio", consentHandler.SubmitTattoo)
		api.POST("/consenso/piercing", consentHandler.SubmitPiercing)
		api.POST("/consenso/trucco-permanente", consentHandler.SubmitPermanentMakeup)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", meHandler.Me)

			admin.GET("/tatuatori", artistHandler.List)
			admin.POST("/tatuatori", artistHandler.Create)
			admin.PATCH("/tatuatori/:id", artistHandler.Update)
			admin.DELETE("/tatuatori/:id", artistHandler.Delete)

			admin.GET("/stanze", roomHandler.List)
			admin.POST("/stanze", roomHandler.Create)
			admin.PATCH("/stanze/:id", roomHandler.Update)
			admin.DELETE("/stanze/:id", roomHandler.Delete)

			// ------------------------------
			// APPUNTAMENTI
			// ------------------------------
			admin.POST("/appuntamenti", appointmentHandler.Create)
			admin.GET("/appuntamenti", appointmentHandler.ListByDate)
			admin.GET("/appuntamenti/mese", appointmentHandler.ListByMonth)
			admin.PUT("/appuntamenti/:id", appointmentHandler.Update)
			admin.DELETE("/appuntamenti/:id", appointmentHandler.Delete)

			// ------------------------------
			// GIFT CARD
			// ------------------------------
			admin.GET("/gift-cards", giftCardAdminHandler.List)
			admin.POST("/gift-cards/drafts", giftCardAdminHandler.CreateDraft)
			admin.POST("/gift-cards/complete", giftCardAdminHandler.Complete)
			admin.PUT("/gift-cards/:id/renew", giftCardAdminHandler.Renew)
			admin.POST("/gift-cards/mark-used", giftCardAdminHandler.MarkUsed)

			admin.GET("/consensi", consentHandler.List)
			admin.GET("/statistiche/gift-cards", statsHandler.GiftCardStats)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
