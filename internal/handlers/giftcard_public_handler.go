package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inklab/studio-manager/internal/cache"
	"github.com/inklab/studio-manager/internal/httperr"
	ucGiftcard "github.com/inklab/studio-manager/internal/usecase/giftcard"
)

// ======================================================
// HANDLER
// ======================================================

// GiftCardPublicHandler serve le pagine raggiunte dal destinatario: il
// riepilogo pre-claim, la finalizzazione e la verifica per codice. Mai
// dati del titolare prima del claim.
type GiftCardPublicHandler struct {
	summaryUC *ucGiftcard.GetClaimSummary
	claimUC   *ucGiftcard.ClaimGiftCard
	verifyUC  *ucGiftcard.VerifyGiftCard

	stats *cache.StatsCache
}

func NewGiftCardPublicHandler(
	summaryUC *ucGiftcard.GetClaimSummary,
	claimUC *ucGiftcard.ClaimGiftCard,
	verifyUC *ucGiftcard.VerifyGiftCard,
	stats *cache.StatsCache,
) *GiftCardPublicHandler {
	return &GiftCardPublicHandler{
		summaryUC: summaryUC,
		claimUC:   claimUC,
		verifyUC:  verifyUC,
		stats:     stats,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClaimRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`

	Email     *string `json:"email,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`

	Dedication string `json:"dedication"`
	Consents   string `json:"consents"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// Token inesistente o card non più draft: 400 generico, senza rivelare
// se il token sia mai esistito. Token noto ma scaduto: 410.
func writeClaimError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "token_not_claimable"):
		httperr.BadRequest(c, "token_not_claimable", "Il link non è valido o è già stato utilizzato.")
	case httperr.IsBusiness(err, "claim_token_expired"):
		httperr.Gone(c, "claim_token_expired", "Il link di attivazione è scaduto.")
	default:
		writeGiftCardError(c, err)
	}
}

// ======================================================
// SUMMARY (pre-claim)
// ======================================================

func (h *GiftCardPublicHandler) ClaimSummary(c *gin.Context) {
	summary, err := h.summaryUC.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ======================================================
// FINALIZE
// ======================================================

func (h *GiftCardPublicHandler) Finalize(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome, cognome e telefono sono obbligatori.")
		return
	}

	birthDate, ok := parseOptionalDate(req.BirthDate)
	if !ok {
		httperr.BadRequest(c, "invalid_birth_date", "Data di nascita non valida.")
		return
	}

	gc, landingURL, err := h.claimUC.Execute(c.Request.Context(), c.Param("token"), ucGiftcard.ClaimInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		BirthDate:  birthDate,
		Dedication: req.Dedication,
		Consents:   req.Consents,
	})
	if err != nil {
		writeClaimError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context(), cache.StatsKey)

	c.JSON(http.StatusOK, gin.H{
		"gift_card":   gc,
		"landing_url": landingURL,
	})
}

// ======================================================
// VERIFY
// ======================================================

func (h *GiftCardPublicHandler) Verify(c *gin.Context) {
	result, err := h.verifyUC.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		if httperr.IsBusiness(err, "gift_card_not_found") {
			httperr.NotFound(c, "gift_card_not_found", "Nessuna gift card con questo codice.")
			return
		}
		httperr.Internal(c, "gift_card_error", "Errore nella verifica della gift card.")
		return
	}

	c.JSON(http.StatusOK, result)
}
