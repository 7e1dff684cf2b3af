package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inklab/studio-manager/internal/cache"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/httpresp"
	ucGiftcard "github.com/inklab/studio-manager/internal/usecase/giftcard"
)

// ======================================================
// HANDLER
// ======================================================

type GiftCardAdminHandler struct {
	createDraftUC *ucGiftcard.CreateDraft
	completeUC    *ucGiftcard.CompleteGiftCard
	renewUC       *ucGiftcard.RenewGiftCard
	markUsedUC    *ucGiftcard.MarkUsed
	listUC        *ucGiftcard.ListGiftCards

	stats *cache.StatsCache
}

func NewGiftCardAdminHandler(
	createDraftUC *ucGiftcard.CreateDraft,
	completeUC *ucGiftcard.CompleteGiftCard,
	renewUC *ucGiftcard.RenewGiftCard,
	markUsedUC *ucGiftcard.MarkUsed,
	listUC *ucGiftcard.ListGiftCards,
	stats *cache.StatsCache,
) *GiftCardAdminHandler {
	return &GiftCardAdminHandler{
		createDraftUC: createDraftUC,
		completeUC:    completeUC,
		renewUC:       renewUC,
		markUsedUC:    markUsedUC,
		listUC:        listUC,
		stats:         stats,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDraftRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CompleteGiftCardRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	Email     *string `json:"email,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`

	Dedication string `json:"dedication"`
	Consents   string `json:"consents"`
}

type MarkUsedRequest struct {
	Code string `json:"code" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeGiftCardError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_amount"):
		httperr.BadRequest(c, "invalid_amount", "L'importo deve essere positivo.")
	case httperr.IsBusiness(err, "missing_holder_fields"):
		httperr.BadRequest(c, "missing_holder_fields", "Nome, cognome e telefono del titolare sono obbligatori.")
	case httperr.IsBusiness(err, "gift_card_not_found"):
		httperr.NotFound(c, "gift_card_not_found", "Gift card non trovata.")
	// L'update condizionato non distingue codice inesistente da card non
	// active: per il banco è la stessa risposta, nessuna card da timbrare.
	case httperr.IsBusiness(err, "gift_card_not_active"):
		httperr.NotFound(c, "gift_card_not_active", "Nessuna gift card attiva con questo codice.")
	case errors.Is(err, domain.ErrCodeExhausted):
		httperr.Internal(c, "code_generation_failed", "Impossibile generare un codice univoco.")
	default:
		httperr.Internal(c, "gift_card_error", "Errore nell'elaborare la gift card.")
	}
}

// ======================================================
// DRAFT + CLAIM LINK
// ======================================================

func (h *GiftCardAdminHandler) CreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	gc, claimURL, err := h.createDraftUC.Execute(c.Request.Context(), ucGiftcard.CreateDraftInput{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		writeGiftCardError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context(), cache.StatsKey)

	c.JSON(http.StatusCreated, gin.H{
		"gift_card": gc,
		"claim_url": claimURL,
	})
}

// ======================================================
// WALK-IN (vendita al banco, già attiva)
// ======================================================

func (h *GiftCardAdminHandler) Complete(c *gin.Context) {
	var req CompleteGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	birthDate, ok := parseOptionalDate(req.BirthDate)
	if !ok {
		httperr.BadRequest(c, "invalid_birth_date", "Data di nascita non valida.")
		return
	}

	gc, err := h.completeUC.Execute(c.Request.Context(), ucGiftcard.CompleteInput{
		Amount:     req.Amount,
		Currency:   req.Currency,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		BirthDate:  birthDate,
		Dedication: req.Dedication,
		Consents:   req.Consents,
	})
	if err != nil {
		writeGiftCardError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context(), cache.StatsKey)

	c.JSON(http.StatusCreated, gc)
}

// ======================================================
// RENEW / MARK USED
// ======================================================

func (h *GiftCardAdminHandler) Renew(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	gc, err := h.renewUC.Execute(c.Request.Context(), uint(id))
	if err != nil {
		writeGiftCardError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context(), cache.StatsKey)

	c.JSON(http.StatusOK, gc)
}

func (h *GiftCardAdminHandler) MarkUsed(c *gin.Context) {
	var req MarkUsedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Codice obbligatorio.")
		return
	}

	gc, err := h.markUsedUC.Execute(c.Request.Context(), req.Code)
	if err != nil {
		writeGiftCardError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context(), cache.StatsKey)

	c.JSON(http.StatusOK, gc)
}

// ======================================================
// LIST
// ======================================================

func (h *GiftCardAdminHandler) List(c *gin.Context) {
	views, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_gift_cards", "Errore nel caricare le gift card.")
		return
	}

	httpresp.List(c, views)
}

// ======================================================
// HELPERS
// ======================================================

func parseOptionalDate(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}

	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
