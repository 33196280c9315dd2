package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	createUC     *ucAppointment.CreateAppointment
	updateUC     *ucAppointment.UpdateAppointment
	changeUC     *ucAppointment.ChangeStatus
	finalizeUC   *ucAppointment.FinalizeAppointments
	deleteUC     *ucAppointment.DeleteAppointment
	searchUC     *ucAppointment.SearchAppointments
	dailySheetUC *ucAppointment.GetDailySheet
	dashboardUC  *ucAppointment.GetDashboard
	log          *zap.Logger
}

func NewAppointmentHandler(
	repo domain.Repository,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	changeUC *ucAppointment.ChangeStatus,
	finalizeUC *ucAppointment.FinalizeAppointments,
	deleteUC *ucAppointment.DeleteAppointment,
	searchUC *ucAppointment.SearchAppointments,
	dailySheetUC *ucAppointment.GetDailySheet,
	dashboardUC *ucAppointment.GetDashboard,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		createUC:     createUC,
		updateUC:     updateUC,
		changeUC:     changeUC,
		finalizeUC:   finalizeUC,
		deleteUC:     deleteUC,
		searchUC:     searchUC,
		dailySheetUC: dailySheetUC,
		dashboardUC:  dashboardUC,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// ScheduledAt is "YYYY-MM-DD HH:MM" in the company timezone.
	ScheduledAt   string `json:"scheduled_at" binding:"required"`
	Status        string `json:"status"`
	ClientID      uint   `json:"client_id" binding:"required"`
	ServiceTypeID uint   `json:"service_type_id" binding:"required"`
	WorkerID      uint   `json:"worker_id" binding:"required"`
}

// UpdateAppointmentRequest carries the full form. A blank status keeps the
// current one.
type UpdateAppointmentRequest CreateAppointmentRequest

type ChangeStatusRequest struct {
	Code string `json:"code"`
}

type FinalizeRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// ======================================================
// QUERIES
// ======================================================

// List searches by client, service type or worker name and an inclusive
// from/to date range.
func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.searchUC.Execute(c.Request.Context(), ucAppointment.SearchAppointmentsInput{
		Text:            c.Query("q"),
		From:            c.Query("from"),
		To:              c.Query("to"),
		IncludeInactive: queryBool(c, "include_inactive"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(aps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

// Choices returns the only values an appointment form may offer.
func (h *AppointmentHandler) Choices(c *gin.Context) {
	choices, err := h.repo.Choices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, choices)
}

// DailySheet answers ?date=YYYY-MM-DD or ?offset=<days from today>, plus
// &desc=true.
func (h *AppointmentHandler) DailySheet(c *gin.Context) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	sheet, err := h.dailySheetUC.Execute(c.Request.Context(), ucAppointment.DailySheetInput{
		Date:   strings.TrimSpace(c.Query("date")),
		Offset: offset,
		Desc:   queryBool(c, "desc"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, sheet)
}

func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, d)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:        middleware.UserID(c),
		ScheduledAt:   req.ScheduledAt,
		Status:        req.Status,
		ClientID:      req.ClientID,
		ServiceTypeID: req.ServiceTypeID,
		WorkerID:      req.WorkerID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		ScheduledAt:   req.ScheduledAt,
		Status:        req.Status,
		ClientID:      req.ClientID,
		ServiceTypeID: req.ServiceTypeID,
		WorkerID:      req.WorkerID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Advance(c *gin.Context) {
	h.changeStatus(c, ucAppointment.MoveAdvance, "")
}

func (h *AppointmentHandler) Revert(c *gin.Context) {
	h.changeStatus(c, ucAppointment.MoveRevert, "")
}

// SetStatus sets the code of the body. A blank code advances.
func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	h.changeStatus(c, ucAppointment.MoveAuto, req.Code)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, move ucAppointment.Move, code string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.changeUC.Execute(c.Request.Context(), ucAppointment.ChangeStatusInput{
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		Move:          move,
		Code:          code,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

// Finalize finalizes every selected id that still qualifies and reports the
// outcome per id.
func (h *AppointmentHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if !bindJSON(c, &req) {
		return
	}

	results, err := h.finalizeUC.Execute(c.Request.Context(), middleware.UserID(c), req.IDs)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, results)
}

func (h *AppointmentHandler) FinalizeOne(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.finalizeUC.One(ctx, middleware.UserID(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
