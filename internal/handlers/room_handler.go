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

type RoomHandler struct {
	db *gorm.DB
}

func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{db: db}
}

// --------- Requests ---------

type CreateRoomRequest struct {
	Name          string `json:"name" binding:"required"`
	NoOverbooking bool   `json:"no_overbooking"`
}

type UpdateRoomRequest struct {
	Name          *string `json:"name,omitempty"`
	NoOverbooking *bool   `json:"no_overbooking,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *RoomHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")

	if active := c.Query("active"); active == "true" {
		q = q.Where("active = ?", true)
	} else if active == "false" {
		q = q.Where("active = ?", false)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rooms", "Errore nel caricare le stanze.")
		return
	}

	httpresp.OK(c, rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	room := models.Room{
		Name:          req.Name,
		NoOverbooking: req.NoOverbooking,
		Active:        true,
	}
	if err := h.db.Create(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_create_room", "Errore nel creare la stanza.")
		return
	}

	httpresp.Created(c, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	var room models.Room
	if err := h.db.First(&room, id).Error; err != nil {
		httperr.NotFound(c, "room_not_found", "Stanza non trovata.")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.NoOverbooking != nil {
		room.NoOverbooking = *req.NoOverbooking
	}
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.db.Save(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_update_room", "Errore nel salvare la stanza.")
		return
	}

	httpresp.OK(c, room)
}

// Stessa regola dei tatuatori: hard delete solo a zero appuntamenti non
// cancellati.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	var room models.Room
	if err := h.db.First(&room, id).Error; err != nil {
		httperr.NotFound(c, "room_not_found", "Stanza non trovata.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("room_id = ? AND status <> ?", id, string(domain.StatusCancelled)).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_room", "Errore nel verificare gli appuntamenti.")
		return
	}

	if count > 0 {
		httperr.BadRequest(c, "room_has_appointments", "La stanza ha appuntamenti attivi: disattivarla invece di eliminarla.")
		return
	}

	if err := h.db.Delete(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_room", "Errore nell'eliminare la stanza.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": room.ID})
}
