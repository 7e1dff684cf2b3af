package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/httpresp"
	ucAppointment "github.com/inklab/studio-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	updateUC      *ucAppointment.UpdateAppointment
	deleteUC      *ucAppointment.DeleteAppointment
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth

	loc *time.Location
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		loc:           loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Nessun binding:required: il validatore di dominio raccoglie tutte le
// violazioni insieme e il 400 le enumera in details.
type CreateAppointmentRequest struct {
	ArtistID uint `json:"artist_id"`
	RoomID   uint `json:"room_id"`

	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`

	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_min"`
	Notes       string    `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeScheduleError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		httperr.BadRequestDetails(c, "validation_failed", "Dati appuntamento non validi.", vErr.Violations)
		return
	}

	var cErr *domain.ConflictError
	if errors.As(err, &cErr) {
		httperr.Conflict(c, "time_conflict", "Conflitto di orario su stanza senza overbooking.", cErr.Conflicts)
		return
	}

	if httperr.IsBusiness(err, "appointment_not_found") {
		httperr.NotFound(c, "appointment_not_found", "Appuntamento non trovato.")
		return
	}

	httperr.Internal(c, "appointment_error", "Errore nell'elaborare l'appuntamento.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ArtistID:      req.ArtistID,
		RoomID:        req.RoomID,
		CustomerPhone: req.CustomerPhone,
		CustomerName:  req.CustomerName,
		StartTime:     req.StartTime,
		DurationMin:   req.DurationMin,
		Notes:         req.Notes,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// UPDATE (patch)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	var req ucAppointment.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dati non validi.")
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), uint(id), req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificativo non valido.")
		return
	}

	receipt, err := h.deleteUC.Execute(c.Request.Context(), uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, receipt)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obbligatoria.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data non valida.")
		return
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Errore nel caricare l'agenda.")
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Anno o mese non validi.")
		return
	}

	aps, err := h.listByMonthUC.Execute(c.Request.Context(), year, time.Month(month), h.loc)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Errore nel caricare l'agenda.")
		return
	}

	httpresp.List(c, aps)
}
