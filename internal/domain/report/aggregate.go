// Package report computes the monthly activity, revenue and retention
// figures of one company. It performs no I/O.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// TopN is the length of every ranking.
const TopN = 3

// Input is everything Aggregate needs. Appointments, Clients and the count
// maps hold active rows of one company only.
type Input struct {
	Period Period

	// Appointments scheduled inside Period, earliest first, with Client,
	// ServiceType and Worker loaded.
	Appointments []models.Appointment

	// NewClients counts clients created inside Period.
	NewClients int64

	// Clients are the company's active clients registered before Period.End.
	Clients []models.Client

	// LookbackCounts and HistoryCounts map client id to its number of
	// non-cancelled appointments in the lookback window and in all history.
	LookbackCounts map[uint]int64
	HistoryCounts  map[uint]int64
}

type WorkerRank struct {
	WorkerID uint            `json:"worker_id"`
	Name     string          `json:"name"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type ClientRank struct {
	ClientID uint            `json:"client_id"`
	Name     string          `json:"name"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthlyReport is the data bag handed to the PDF and XLSX renderers.
type MonthlyReport struct {
	Period Period `json:"period"`

	TotalAppointments int             `json:"total_appointments"`
	FinishedCount     int             `json:"finished_count"`
	CancelledCount    int             `json:"cancelled_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	LostRevenue       decimal.Decimal `json:"lost_revenue"`

	TopWorkersByFinished  []WorkerRank `json:"top_workers_by_finished"`
	TopWorkersByCancelled []WorkerRank `json:"top_workers_by_cancelled"`
	TopWorkersByRevenue   []WorkerRank `json:"top_workers_by_revenue"`

	NewClients            int64        `json:"new_clients"`
	TopClientsByBooked    []ClientRank `json:"top_clients_by_booked"`
	TopClientsByFinished  []ClientRank `json:"top_clients_by_finished"`
	TopClientsByCancelled []ClientRank `json:"top_clients_by_cancelled"`
	TopRevenueClient      *ClientRank  `json:"top_revenue_client"`

	DistinctClients   int             `json:"distinct_clients"`
	RecurringClients  int             `json:"recurring_clients"`
	RecurrencePercent decimal.Decimal `json:"recurrence_percent"`

	InactiveClients int          `json:"inactive_clients"`
	LapsedRecurring []ClientRank `json:"lapsed_recurring"`
}

type workerTally struct {
	id        uint
	name      string
	finished  int64
	cancelled int64
	revenue   decimal.Decimal
}

type clientTally struct {
	id           uint
	name         string
	booked       int64
	finished     int64
	cancelled    int64
	notCancelled int64
	revenue      decimal.Decimal
}

// Aggregate builds the monthly report. Rankings keep first-appearance order
// between equal values.
func Aggregate(in Input) *MonthlyReport {
	rep := &MonthlyReport{
		Period:            in.Period,
		TotalAppointments: len(in.Appointments),
		Revenue:           decimal.Zero,
		LostRevenue:       decimal.Zero,
		NewClients:        in.NewClients,
		RecurrencePercent: decimal.Zero,
	}

	var workers []*workerTally
	workerIdx := map[uint]*workerTally{}
	var clients []*clientTally
	clientIdx := map[uint]*clientTally{}

	for _, ap := range in.Appointments {
		w, ok := workerIdx[ap.WorkerID]
		if !ok {
			w = &workerTally{id: ap.WorkerID, name: ap.Worker.Name, revenue: decimal.Zero}
			workerIdx[ap.WorkerID] = w
			workers = append(workers, w)
		}
		c, ok := clientIdx[ap.ClientID]
		if !ok {
			c = &clientTally{id: ap.ClientID, name: ap.Client.Name, revenue: decimal.Zero}
			clientIdx[ap.ClientID] = c
			clients = append(clients, c)
		}

		price := ap.ServiceType.Price
		c.booked++

		switch domain.Status(ap.Status) {
		case domain.StatusFinished:
			rep.FinishedCount++
			rep.Revenue = rep.Revenue.Add(price)
			w.finished++
			w.revenue = w.revenue.Add(price)
			c.finished++
			c.revenue = c.revenue.Add(price)
		case domain.StatusCancelled:
			rep.CancelledCount++
			rep.LostRevenue = rep.LostRevenue.Add(price)
			w.cancelled++
			c.cancelled++
		}
		if domain.Status(ap.Status) != domain.StatusCancelled {
			c.notCancelled++
		}
	}

	rep.TopWorkersByFinished = rankWorkers(workers, func(w *workerTally) int64 { return w.finished })
	rep.TopWorkersByCancelled = rankWorkers(workers, func(w *workerTally) int64 { return w.cancelled })
	rep.TopWorkersByRevenue = rankWorkersByRevenue(workers)

	rep.TopClientsByBooked = rankClients(clients, func(c *clientTally) int64 { return c.booked })
	rep.TopClientsByFinished = rankClients(clients, func(c *clientTally) int64 { return c.finished })
	rep.TopClientsByCancelled = rankClients(clients, func(c *clientTally) int64 { return c.cancelled })
	rep.TopRevenueClient = topRevenueClient(clients)

	rep.DistinctClients = len(clients)
	for _, c := range clients {
		if c.notCancelled > 1 {
			rep.RecurringClients++
		}
	}
	rep.RecurrencePercent = Percent(int64(rep.RecurringClients), int64(rep.DistinctClients))

	rep.InactiveClients, rep.LapsedRecurring = inactiveCohort(in)
	return rep
}

// Percent is part/whole*100 rounded to two places; zero when whole is zero.
func Percent(part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(2)
}

func rankWorkers(workers []*workerTally, key func(*workerTally) int64) []WorkerRank {
	ranked := make([]*workerTally, 0, len(workers))
	for _, w := range workers {
		if key(w) > 0 {
			ranked = append(ranked, w)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })

	out := []WorkerRank{}
	for _, w := range ranked {
		if len(out) == TopN {
			break
		}
		out = append(out, WorkerRank{WorkerID: w.id, Name: w.name, Count: key(w), Revenue: w.revenue})
	}
	return out
}

func rankWorkersByRevenue(workers []*workerTally) []WorkerRank {
	ranked := make([]*workerTally, 0, len(workers))
	for _, w := range workers {
		if w.revenue.IsPositive() {
			ranked = append(ranked, w)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].revenue.GreaterThan(ranked[j].revenue) })

	out := []WorkerRank{}
	for _, w := range ranked {
		if len(out) == TopN {
			break
		}
		out = append(out, WorkerRank{WorkerID: w.id, Name: w.name, Count: w.finished, Revenue: w.revenue})
	}
	return out
}

func rankClients(clients []*clientTally, key func(*clientTally) int64) []ClientRank {
	ranked := make([]*clientTally, 0, len(clients))
	for _, c := range clients {
		if key(c) > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })

	out := []ClientRank{}
	for _, c := range ranked {
		if len(out) == TopN {
			break
		}
		out = append(out, ClientRank{ClientID: c.id, Name: c.name, Count: key(c), Revenue: c.revenue})
	}
	return out
}

// topRevenueClient returns nil when nobody generated revenue.
func topRevenueClient(clients []*clientTally) *ClientRank {
	var best *clientTally
	for _, c := range clients {
		if best == nil || c.revenue.GreaterThan(best.revenue) {
			best = c
		}
	}
	if best == nil || !best.revenue.IsPositive() {
		return nil
	}
	return &ClientRank{ClientID: best.id, Name: best.name, Count: best.finished, Revenue: best.revenue}
}

// inactiveCohort counts active clients without a non-cancelled appointment in
// the lookback window, and ranks those that had more than one historically.
// Clients registered after the period did not exist yet and are skipped.
func inactiveCohort(in Input) (int, []ClientRank) {
	inactive := 0
	var lapsed []ClientRank
	for _, c := range in.Clients {
		if !c.CreatedAt.IsZero() && !c.CreatedAt.Before(in.Period.End) {
			continue
		}
		if in.LookbackCounts[c.ID] > 0 {
			continue
		}
		inactive++
		if n := in.HistoryCounts[c.ID]; n > 1 {
			lapsed = append(lapsed, ClientRank{ClientID: c.ID, Name: c.Name, Count: n, Revenue: decimal.Zero})
		}
	}

	sort.SliceStable(lapsed, func(i, j int) bool { return lapsed[i].Count > lapsed[j].Count })
	if len(lapsed) > TopN {
		lapsed = lapsed[:TopN]
	}
	if lapsed == nil {
		lapsed = []ClientRank{}
	}
	return inactive, lapsed
}
