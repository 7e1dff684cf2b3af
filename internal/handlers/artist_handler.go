package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/httpresp"
	"github.com/inklab/studio-manager/internal/models"
)

type ArtistHandler struct {
	db *gorm.DB
}

func NewArtistHandler(db *gorm.DB) *ArtistHandler {
	return &ArtistHandler{db: db}
}

// --------- Requests ---------

type CreateArtistRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateArtistRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ArtistHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")

	if active := c.Query("active"); active == "true" {
		q = q.Where("active = ?", true)
	} else if active == "false" {
		q = q.Where("active = ?", false)
	}

	var artists []models.Artist
	if err := q.Find(&artists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Errore nel caricare i tatuatori.")
		return
	}

	httpresp.OK(c, artists)
}

func (h *ArtistHandler) Create(c *gin.Context) {
	var req CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	artist := models.Artist{Name: req.Name, Active: true}
	if err := h.db.Create(&artist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_artist", "Errore nel creare il tatuatore.")
		return
	}

	httpresp.Created(c, artist)
}

func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	var artist models.Artist
	if err := h.db.First(&artist, id).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Tatuatore non trovato.")
		return
	}

	var req UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	if req.Name != nil {
		artist.Name = *req.Name
	}
	if req.Active != nil {
		artist.Active = *req.Active
	}

	if err := h.db.Save(&artist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_artist", "Errore nel salvare il tatuatore.")
		return
	}

	httpresp.OK(c, artist)
}

// Delete è permesso solo a zero appuntamenti non cancellati: finché è
// referenziato, il tatuatore si disattiva (active=false), non si elimina.
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	var artist models.Artist
	if err := h.db.First(&artist, id).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Tatuatore non trovato.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("artist_id = ? AND status <> ?", id, string(domain.StatusCancelled)).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_artist", "Errore nel verificare gli appuntamenti.")
		return
	}

	if count > 0 {
		httperr.BadRequest(c, "artist_has_appointments", "Il tatuatore ha appuntamenti attivi: disattivarlo invece di eliminarlo.")
		return
	}

	if err := h.db.Delete(&artist).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_artist", "Errore nell'eliminare il tatuatore.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": artist.ID})
}
