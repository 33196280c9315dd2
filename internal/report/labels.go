package report

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/report"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName is the Portuguese name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

// Title is the heading shared by every output format.
func Title(p domain.Period) string {
	return fmt.Sprintf("Relatório mensal de agendamentos - %s de %d", MonthName(p.Month), p.Year)
}

// PDFFilename names a generated PDF after the moment it was produced.
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("relatorio_agendamentos_mensal (%s).pdf", now.Format("2006-01-02 15-04-05"))
}

// XLSXFilename names a generated workbook after the moment it was produced.
func XLSXFilename(now time.Time) string {
	return fmt.Sprintf("relatorio_agendamentos_mensal (%s).xlsx", now.Format("2006-01-02 15-04-05"))
}

type row struct {
	label string
	value string
}

func summaryRows(rep *domain.MonthlyReport, loc Locale) []row {
	topClient := "Nenhum encontrado"
	if rep.TopRevenueClient != nil {
		topClient = fmt.Sprintf("%s (%s)", rep.TopRevenueClient.Name, loc.Money(rep.TopRevenueClient.Revenue))
	}

	return []row{
		{"Agendamentos no mês", fmt.Sprint(rep.TotalAppointments)},
		{"Finalizados", fmt.Sprint(rep.FinishedCount)},
		{"Faturamento", loc.Money(rep.Revenue)},
		{"Cancelados", fmt.Sprint(rep.CancelledCount)},
		{"Faturamento perdido", loc.Money(rep.LostRevenue)},
		{"Novos clientes", fmt.Sprint(rep.NewClients)},
		{"Clientes atendidos", fmt.Sprint(rep.DistinctClients)},
		{"Clientes recorrentes", fmt.Sprint(rep.RecurringClients)},
		{"Taxa de recorrência", loc.Percent(rep.RecurrencePercent)},
		{"Clientes inativos (6 meses)", fmt.Sprint(rep.InactiveClients)},
		{"Cliente com maior faturamento", topClient},
	}
}

type ranking struct {
	title string
	rows  []row
}

func workerRankings(rep *domain.MonthlyReport, loc Locale) []ranking {
	count := func(ranks []domain.WorkerRank) []row {
		out := make([]row, 0, len(ranks))
		for _, r := range ranks {
			out = append(out, row{r.Name, fmt.Sprint(r.Count)})
		}
		return out
	}
	revenue := make([]row, 0, len(rep.TopWorkersByRevenue))
	for _, r := range rep.TopWorkersByRevenue {
		revenue = append(revenue, row{r.Name, loc.Money(r.Revenue)})
	}

	return []ranking{
		{"Profissionais com mais atendimentos finalizados", count(rep.TopWorkersByFinished)},
		{"Profissionais com mais cancelamentos", count(rep.TopWorkersByCancelled)},
		{"Profissionais com maior faturamento", revenue},
	}
}

func clientRankings(rep *domain.MonthlyReport) []ranking {
	count := func(ranks []domain.ClientRank) []row {
		out := make([]row, 0, len(ranks))
		for _, r := range ranks {
			out = append(out, row{r.Name, fmt.Sprint(r.Count)})
		}
		return out
	}

	return []ranking{
		{"Clientes com mais agendamentos", count(rep.TopClientsByBooked)},
		{"Clientes com mais atendimentos finalizados", count(rep.TopClientsByFinished)},
		{"Clientes com mais cancelamentos", count(rep.TopClientsByCancelled)},
		{"Clientes recorrentes que deixaram de vir", count(rep.LapsedRecurring)},
	}
}
