package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	log  *zap.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

// List pages through the audit trail of the active company. from and to are
// inclusive dates in the company timezone.
func (h *AuditLogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	company, ok := tenant.FromContext(ctx)
	if !ok {
		httperr.Respond(c, h.log, tenant.ErrNoActiveTenant)
		return
	}

	from, to, err := timezone.InclusiveRange(c.Query("from"), c.Query("to"), timezone.Location(company.Timezone))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if from != nil {
		utc := from.UTC()
		from = &utc
	}
	if to != nil {
		utc := to.UTC()
		to = &utc
	}

	page, ok1 := queryInt(c, "page", 1)
	limit, ok2 := queryInt(c, "limit", audit.DefaultPageSize)
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	}

	logs, total, err := h.logs.List(ctx, f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > audit.MaxPageSize {
		limit = audit.DefaultPageSize
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
