package handlers

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	ucReport "github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	monthly *ucReport.GenerateMonthlyReport
	locale  report.Locale
	now     func() time.Time
	log     *zap.Logger
}

func NewReportHandler(
	monthly *ucReport.GenerateMonthlyReport,
	locale report.Locale,
	now func() time.Time,
	log *zap.Logger,
) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{
		monthly: monthly,
		locale:  locale,
		now:     now,
		log:     log,
	}
}

// Monthly returns the report data bag. ?year and ?month default to the
// current month of the company.
func (h *ReportHandler) Monthly(c *gin.Context) {
	rep, ok := h.generate(c)
	if !ok {
		return
	}
	httpresp.OK(c, rep)
}

func (h *ReportHandler) MonthlyPDF(c *gin.Context) {
	rep, ok := h.generate(c)
	if !ok {
		return
	}

	company, _ := tenant.FromContext(c.Request.Context())
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, rep, company.TradeName, h.locale, h.now()); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.File(c, contentTypePDF, report.PDFFilename(h.now()), true, buf.Bytes())
}

func (h *ReportHandler) MonthlyXLSX(c *gin.Context) {
	rep, ok := h.generate(c)
	if !ok {
		return
	}

	company, _ := tenant.FromContext(c.Request.Context())
	body, err := report.RenderXLSX(rep, company.TradeName, h.locale)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.File(c, contentTypeXLSX, report.XLSXFilename(h.now()), false, body)
}

func (h *ReportHandler) generate(c *gin.Context) (*domain.MonthlyReport, bool) {
	year, month, err := ucReport.ParseYearMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}

	rep, err := h.monthly.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return rep, true
}
