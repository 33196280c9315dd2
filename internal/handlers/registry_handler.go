package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

var errInvalidPrice = httperr.ErrBusiness("invalid_price")

// registryHandler serves the endpoints shared by clients, workers and
// service types.
type registryHandler[T any, PT interface {
	*T
	models.TenantOwned
}] struct {
	repo   *infraRepo.Registry[T, PT]
	entity string
	audit  *audit.Dispatcher
	log    *zap.Logger
}

// List searches by name. Inactive rows are shown only with
// include_inactive=true.
func (h *registryHandler[T, PT]) List(c *gin.Context) {
	rows, err := h.repo.Search(c.Request.Context(), c.Query("q"), queryBool(c, "include_inactive"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *registryHandler[T, PT]) Delete(c *gin.Context) {
	h.toggle(c, audit.ActionDelete, h.repo.SoftDelete)
}

func (h *registryHandler[T, PT]) Restore(c *gin.Context) {
	h.toggle(c, audit.ActionRestore, h.repo.Restore)
}

func (h *registryHandler[T, PT]) toggle(
	c *gin.Context,
	action string,
	apply func(ctx context.Context, id uint) error,
) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := apply(ctx, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.dispatch(c, action, id, nil)
	c.Status(http.StatusNoContent)
}

// create stores row under the active company. id is read after the insert
// for the audit event.
func (h *registryHandler[T, PT]) create(c *gin.Context, row PT, id *uint) {
	if err := h.repo.Create(c.Request.Context(), row); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.dispatch(c, audit.ActionCreate, *id, nil)
	c.JSON(http.StatusCreated, row)
}

func (h *registryHandler[T, PT]) dispatch(c *gin.Context, action string, id uint, meta any) {
	companyID, _ := tenant.CompanyID(c.Request.Context())
	userID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    action,
		Entity:    h.entity,
		EntityID:  &id,
		Metadata:  meta,
	})
}

// imageEndpoints adds upload and download of a row's image.
type imageEndpoints[T any, PT interface {
	*T
	models.TenantOwned
}] struct {
	registryHandler[T, PT]
	images   *Images
	imageKey func(PT) string
}

func (h *imageEndpoints[T, PT]) UploadImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.Get(ctx, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	companyID, _ := tenant.CompanyID(ctx)
	key, err := h.images.upload(c, companyID, middleware.UserID(c), h.entity, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := h.repo.SetImage(ctx, id, key); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_key": key})
}

func (h *imageEndpoints[T, PT]) Image(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	row, err := h.repo.Get(c.Request.Context(), id, infraRepo.IncludeInactive())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := h.images.serve(c, h.imageKey(PT(row))); err != nil {
		httperr.Respond(c, h.log, err)
	}
}

// ======================================================
// CLIENTS
// ======================================================

type ClientHandler struct {
	imageEndpoints[models.Client, *models.Client]
}

func NewClientHandler(
	repo *infraRepo.Registry[models.Client, *models.Client],
	images *Images,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ClientHandler {
	return &ClientHandler{imageEndpoints[models.Client, *models.Client]{
		registryHandler: registryHandler[models.Client, *models.Client]{
			repo: repo, entity: "client", audit: audit, log: log,
		},
		images:   images,
		imageKey: func(c *models.Client) string { return c.ImageKey },
	}}
}

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	CPF     string `json:"cpf" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	cpf, err := validators.NormalizeCPF(req.CPF)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	phone, err := validators.NormalizePhone(req.Phone)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	client := &models.Client{
		Name:    strings.TrimSpace(req.Name),
		CPF:     cpf,
		Phone:   phone,
		Address: strings.TrimSpace(req.Address),
	}
	h.create(c, client, &client.ID)
}

// ======================================================
// WORKERS
// ======================================================

type WorkerHandler struct {
	imageEndpoints[models.Worker, *models.Worker]
	workers *infraRepo.WorkerGormRepository
}

func NewWorkerHandler(
	workers *infraRepo.WorkerGormRepository,
	images *Images,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *WorkerHandler {
	return &WorkerHandler{
		imageEndpoints: imageEndpoints[models.Worker, *models.Worker]{
			registryHandler: registryHandler[models.Worker, *models.Worker]{
				repo: workers.Registry, entity: "worker", audit: audit, log: log,
			},
			images:   images,
			imageKey: func(w *models.Worker) string { return w.ImageKey },
		},
		workers: workers,
	}
}

// List carries each worker's total and pending appointment counts.
func (h *WorkerHandler) List(c *gin.Context) {
	rows, err := h.workers.SearchWithCounts(c.Request.Context(), c.Query("q"), queryBool(c, "include_inactive"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateWorkerRequest struct {
	Name    string `json:"name" binding:"required"`
	CPF     string `json:"cpf" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

func (h *WorkerHandler) Create(c *gin.Context) {
	var req CreateWorkerRequest
	if !bindJSON(c, &req) {
		return
	}

	cpf, err := validators.NormalizeCPF(req.CPF)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	phone, err := validators.NormalizePhone(req.Phone)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	worker := &models.Worker{
		Name:    strings.TrimSpace(req.Name),
		CPF:     cpf,
		Phone:   phone,
		Address: strings.TrimSpace(req.Address),
	}
	h.create(c, worker, &worker.ID)
}

// ======================================================
// SERVICE TYPES
// ======================================================

type ServiceTypeHandler struct {
	registryHandler[models.ServiceType, *models.ServiceType]
}

func NewServiceTypeHandler(
	repo *infraRepo.Registry[models.ServiceType, *models.ServiceType],
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ServiceTypeHandler {
	return &ServiceTypeHandler{registryHandler[models.ServiceType, *models.ServiceType]{
		repo: repo, entity: "service_type", audit: audit, log: log,
	}}
}

type CreateServiceTypeRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Price string `json:"price" binding:"required"`
}

func (h *ServiceTypeHandler) Create(c *gin.Context) {
	var req CreateServiceTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	price = price.Round(2)
	if err != nil || !price.IsPositive() {
		httperr.Respond(c, h.log, errInvalidPrice)
		return
	}

	st := &models.ServiceType{
		Name:  strings.TrimSpace(req.Name),
		Price: price,
	}
	h.create(c, st, &st.ID)
}
