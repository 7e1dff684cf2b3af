package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/httpresp"
	"github.com/inklab/studio-manager/internal/infra/repository"
	ucConsent "github.com/inklab/studio-manager/internal/usecase/consent"
)

// ======================================================
// HANDLER
// ======================================================

type ConsentHandler struct {
	submitUC *ucConsent.SubmitConsent

	repo *repository.ConsentGormRepository
}

func NewConsentHandler(
	submitUC *ucConsent.SubmitConsent,
	repo *repository.ConsentGormRepository,
) *ConsentHandler {
	return &ConsentHandler{submitUC: submitUC, repo: repo}
}

// ======================================================
// SUBMIT (pubblico, un endpoint per tipo)
// ======================================================

// Il body è il form completo come arriva dal frontend: i campi richiesti
// vengono controllati dallo use case, il resto viaggia opaco.
func (h *ConsentHandler) submit(c *gin.Context, consentType string) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	consent, err := h.submitUC.Execute(c.Request.Context(), consentType, payload)
	if err != nil {
		var vErr *ucConsent.ValidationError
		if errors.As(err, &vErr) {
			httperr.BadRequestDetails(c, "missing_fields", "Campi obbligatori mancanti.", vErr.Missing)
			return
		}
		if httperr.IsBusiness(err, "invalid_consent_type") {
			httperr.BadRequest(c, "invalid_consent_type", "Tipo di consenso non riconosciuto.")
			return
		}
		httperr.Internal(c, "consent_error", "Errore nel salvare il consenso.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           consent.ID,
		"type":         consent.Type,
		"submitted_at": consent.SubmittedAt,
	})
}

func (h *ConsentHandler) SubmitTattoo(c *gin.Context) {
	h.submit(c, ucConsent.TypeTatuaggio)
}

func (h *ConsentHandler) SubmitPiercing(c *gin.Context) {
	h.submit(c, ucConsent.TypePiercing)
}

func (h *ConsentHandler) SubmitPermanentMakeup(c *gin.Context) {
	h.submit(c, ucConsent.TypeTruccoPermanente)
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *ConsentHandler) List(c *gin.Context) {
	consents, err := h.repo.ListConsents(
		c.Request.Context(),
		c.Query("type"),
		c.Query("phone"),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_consents", "Errore nel caricare i consensi.")
		return
	}

	httpresp.List(c, consents)
}
