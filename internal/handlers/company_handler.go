package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type CompanyHandler struct {
	companies       *infraRepo.CompanyGormRepository
	resolver        *tenant.Resolver
	images          *Images
	audit           *audit.Dispatcher
	defaultTimezone string
	log             *zap.Logger
}

func NewCompanyHandler(
	companies *infraRepo.CompanyGormRepository,
	resolver *tenant.Resolver,
	images *Images,
	audit *audit.Dispatcher,
	defaultTimezone string,
	log *zap.Logger,
) *CompanyHandler {
	return &CompanyHandler{
		companies:       companies,
		resolver:        resolver,
		images:          images,
		audit:           audit,
		defaultTimezone: defaultTimezone,
		log:             log,
	}
}

type CreateCompanyRequest struct {
	CNPJ      string `json:"cnpj" binding:"required"`
	TradeName string `json:"trade_name" binding:"required"`
	LegalName string `json:"legal_name" binding:"required"`
	Timezone  string `json:"timezone"`
}

// List returns the companies of the user; they are the only valid
// selections.
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	cnpj, err := validators.NormalizeCNPJ(req.CNPJ)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = h.defaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.Respond(c, h.log, timezone.ErrInvalidTimezone)
		return
	}

	userID := middleware.UserID(c)
	company := models.Company{
		UserID:    userID,
		CNPJ:      cnpj,
		TradeName: strings.TrimSpace(req.TradeName),
		LegalName: strings.TrimSpace(req.LegalName),
		Timezone:  tz,
	}
	if err := h.companies.Create(c.Request.Context(), &company); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: company.ID,
		UserID:    &userID,
		Action:    audit.ActionCreate,
		Entity:    "company",
		EntityID:  &company.ID,
	})

	c.JSON(http.StatusCreated, company)
}

// Select makes the company the active one of the session. A company the user
// does not own answers 404 and the session is left as it was.
func (h *CompanyHandler) Select(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	company, err := h.resolver.Select(c.Request.Context(), middleware.SessionID(c), userID, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: company.ID,
		UserID:    &userID,
		Action:    audit.ActionSelect,
		Entity:    "company",
		EntityID:  &company.ID,
	})

	c.JSON(http.StatusOK, company)
}

// Current returns the active company attached by the tenant middleware.
func (h *CompanyHandler) Current(c *gin.Context) {
	company, ok := tenant.FromContext(c.Request.Context())
	if !ok {
		httperr.Respond(c, h.log, tenant.ErrNoActiveTenant)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UploadImage(c *gin.Context) {
	company, ok := tenant.FromContext(c.Request.Context())
	if !ok {
		httperr.Respond(c, h.log, tenant.ErrNoActiveTenant)
		return
	}

	key, err := h.images.upload(c, company.ID, middleware.UserID(c), "company", company.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := h.companies.UpdateImage(c.Request.Context(), company.ID, key); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_key": key})
}

func (h *CompanyHandler) Image(c *gin.Context) {
	company, ok := tenant.FromContext(c.Request.Context())
	if !ok {
		httperr.Respond(c, h.log, tenant.ErrNoActiveTenant)
		return
	}
	if err := h.images.serve(c, company.ImageKey); err != nil {
		httperr.Respond(c, h.log, err)
	}
}
