package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/report"
)

const (
	SheetSummary = "Resumo"
	SheetWorkers = "Profissionais"
	SheetClients = "Clientes"
)

// RenderXLSX returns rep as a workbook with one sheet per section group.
func RenderXLSX(rep *domain.MonthlyReport, companyName string, loc Locale) ([]byte, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetWorkers, SheetClients} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sw := &sheetWriter{f: f, header: headerStyle}

	sw.sheet(SheetSummary)
	sw.title(Title(rep.Period))
	sw.title(companyName)
	sw.blank()
	sw.rows(summaryRows(rep, loc))

	sw.sheet(SheetWorkers)
	for _, r := range workerRankings(rep, loc) {
		sw.ranking(r)
	}

	sw.sheet(SheetClients)
	for _, r := range clientRankings(rep) {
		sw.ranking(r)
	}

	for _, name := range []string{SheetSummary, SheetWorkers, SheetClients} {
		if err := f.SetColWidth(name, "A", "A", 55); err != nil {
			sw.err = err
		}
		if err := f.SetColWidth(name, "B", "B", 25); err != nil {
			sw.err = err
		}
	}
	if sw.err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", sw.err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to the current sheet and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	name   string
	next   int
	err    error
}

func (w *sheetWriter) sheet(name string) {
	w.name = name
	w.next = 1
}

func (w *sheetWriter) set(col int, value any, styled bool) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.next)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.name, cell, value); err != nil {
		w.err = err
		return
	}
	if styled {
		w.err = w.f.SetCellStyle(w.name, cell, cell, w.header)
	}
}

func (w *sheetWriter) title(text string) {
	w.set(1, text, true)
	w.next++
}

func (w *sheetWriter) blank() {
	w.next++
}

func (w *sheetWriter) rows(rows []row) {
	for _, r := range rows {
		w.set(1, r.label, false)
		w.set(2, r.value, false)
		w.next++
	}
}

func (w *sheetWriter) ranking(r ranking) {
	w.set(1, r.title, true)
	w.set(2, "", true)
	w.next++
	if len(r.rows) == 0 {
		w.set(1, "Nenhum registro no período.", false)
		w.next++
	}
	w.rows(r.rows)
	w.blank()
}
