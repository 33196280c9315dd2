package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/report"
)

const (
	pageWidth  = 190.0
	labelWidth = 120.0
	lineHeight = 7.0
)

// RenderPDF writes rep as a single A4 document.
func RenderPDF(w io.Writer, rep *domain.MonthlyReport, companyName string, loc Locale, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(Title(rep.Period)), false)
	pdf.SetAuthor(tr(companyName), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Gerado em %s - página %d", now.Format("02/01/2006 15:04"), pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, tr(Title(rep.Period)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(pageWidth, 8, tr(companyName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Resumo", summaryRows(rep, loc))

	for _, r := range workerRankings(rep, loc) {
		section(pdf, tr, r.title, r.rows)
	}
	for _, r := range clientRankings(rep) {
		section(pdf, tr, r.title, r.rows)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 243, 255)
	pdf.CellFormat(pageWidth, lineHeight+1, tr(title), "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(pageWidth, lineHeight, tr("Nenhum registro no período."), "LRB", 1, "L", false, 0, "")
	}
	for _, r := range rows {
		pdf.CellFormat(labelWidth, lineHeight, tr(r.label), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-labelWidth, lineHeight, tr(r.value), "RB", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}
