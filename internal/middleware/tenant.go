package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
)

// CompanySelectionPath is where requests without an active company are sent.
const CompanySelectionPath = "/api/companies"

// TenantMiddleware attaches the session's active company to the request
// context. Without one the request is redirected to the selection flow; a
// company the user does not own answers 404.
func TenantMiddleware(resolver *tenant.Resolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		company, err := resolver.Resolve(c.Request.Context(), SessionID(c), UserID(c))
		switch {
		case errors.Is(err, tenant.ErrNoActiveTenant):
			c.Header("Location", CompanySelectionPath)
			c.AbortWithStatusJSON(http.StatusSeeOther, httperr.HTTPError{
				Code:    "no_active_company",
				Message: httperr.Message("no_active_company"),
			})
			return
		case errors.Is(err, tenant.ErrTenantNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, httperr.HTTPError{
				Code:    "company_not_found",
				Message: httperr.Message("company_not_found"),
			})
			return
		case err != nil:
			log.Error("tenant resolution failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.HTTPError{
				Code:    "internal_error",
				Message: "Erro interno.",
			})
			return
		}

		c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), company))
		c.Set(ContextCompanyID, company.ID)

		c.Next()
	}
}
