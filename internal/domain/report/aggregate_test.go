package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func fixture(clientID, workerID uint, status, price string) models.Appointment {
	return models.Appointment{
		Status:      status,
		ClientID:    clientID,
		Client:      models.Client{ID: clientID, Name: "client-" + string(rune('A'+clientID-1))},
		WorkerID:    workerID,
		Worker:      models.Worker{ID: workerID, Name: "worker-" + string(rune('A'+workerID-1))},
		ServiceType: models.ServiceType{Price: decimal.RequireFromString(price)},
	}
}

func may2024(t *testing.T) Period {
	t.Helper()
	p, err := NewPeriod(2024, time.May, time.UTC)
	require.NoError(t, err)
	return p
}

func TestAggregate_RecurrenceIsFiftyPercent(t *testing.T) {
	in := Input{
		Period: may2024(t),
		Appointments: []models.Appointment{
			fixture(1, 1, "F", "50.00"),
			fixture(1, 1, "P", "50.00"),
			fixture(2, 1, "E", "30.00"),
			fixture(2, 2, "F", "30.00"),
			fixture(3, 2, "F", "20.00"),
			fixture(4, 2, "F", "10.00"),
			fixture(4, 2, "C", "10.00"),
		},
	}

	rep := Aggregate(in)

	assert.Equal(t, 4, rep.DistinctClients)
	assert.Equal(t, 2, rep.RecurringClients)
	assert.Equal(t, "50", rep.RecurrencePercent.String())
	assert.Equal(t, "50.00", rep.RecurrencePercent.StringFixed(2))
}

func TestAggregate_RevenueAndCounts(t *testing.T) {
	in := Input{
		Period: may2024(t),
		Appointments: []models.Appointment{
			fixture(1, 1, "F", "40.00"),
			fixture(2, 1, "F", "25.50"),
			fixture(2, 2, "C", "15.25"),
			fixture(3, 2, "P", "99.99"),
		},
		NewClients: 2,
	}

	rep := Aggregate(in)

	assert.Equal(t, 4, rep.TotalAppointments)
	assert.Equal(t, 2, rep.FinishedCount)
	assert.Equal(t, 1, rep.CancelledCount)
	assert.True(t, decimal.RequireFromString("65.50").Equal(rep.Revenue))
	assert.True(t, decimal.RequireFromString("15.25").Equal(rep.LostRevenue))
	assert.Equal(t, int64(2), rep.NewClients)

	require.NotNil(t, rep.TopRevenueClient)
	assert.Equal(t, uint(1), rep.TopRevenueClient.ClientID)
}

func TestAggregate_RankingsAreStableAndCapped(t *testing.T) {
	in := Input{
		Period: may2024(t),
		Appointments: []models.Appointment{
			fixture(1, 4, "F", "10.00"),
			fixture(1, 3, "F", "10.00"),
			fixture(1, 2, "F", "10.00"),
			fixture(1, 1, "F", "10.00"),
			fixture(1, 1, "F", "10.00"),
		},
	}

	rep := Aggregate(in)

	require.Len(t, rep.TopWorkersByFinished, TopN)
	assert.Equal(t, uint(1), rep.TopWorkersByFinished[0].WorkerID)
	assert.Equal(t, int64(2), rep.TopWorkersByFinished[0].Count)
	// ties keep first-appearance order
	assert.Equal(t, uint(4), rep.TopWorkersByFinished[1].WorkerID)
	assert.Equal(t, uint(3), rep.TopWorkersByFinished[2].WorkerID)

	assert.Empty(t, rep.TopWorkersByCancelled)
	assert.Equal(t, uint(1), rep.TopWorkersByRevenue[0].WorkerID)
}

func TestAggregate_NoRevenueMeansNoTopClient(t *testing.T) {
	in := Input{
		Period: may2024(t),
		Appointments: []models.Appointment{
			fixture(1, 1, "P", "10.00"),
			fixture(2, 1, "C", "10.00"),
		},
	}

	rep := Aggregate(in)

	assert.Nil(t, rep.TopRevenueClient)
	assert.Equal(t, 0, rep.RecurringClients)
}

func TestAggregate_EmptyMonth(t *testing.T) {
	rep := Aggregate(Input{Period: may2024(t)})

	assert.Equal(t, 0, rep.TotalAppointments)
	assert.True(t, rep.RecurrencePercent.IsZero())
	assert.Nil(t, rep.TopRevenueClient)
	assert.Empty(t, rep.LapsedRecurring)
}

func TestAggregate_InactiveCohort(t *testing.T) {
	in := Input{
		Period: may2024(t),
		Clients: []models.Client{
			{ID: 1, Name: "Ana"},
			{ID: 2, Name: "Bruno"},
			{ID: 3, Name: "Carla"},
			{ID: 4, Name: "Davi"},
		},
		LookbackCounts: map[uint]int64{1: 3},
		HistoryCounts:  map[uint]int64{1: 9, 2: 1, 3: 2, 4: 5},
	}

	rep := Aggregate(in)

	assert.Equal(t, 3, rep.InactiveClients)
	require.Len(t, rep.LapsedRecurring, 2)
	assert.Equal(t, "Davi", rep.LapsedRecurring[0].Name)
	assert.Equal(t, "Carla", rep.LapsedRecurring[1].Name)
}

func TestAggregate_InactiveCohortSkipsClientsRegisteredLater(t *testing.T) {
	jan, err := NewPeriod(2024, time.January, time.UTC)
	require.NoError(t, err)

	in := Input{
		Period: jan,
		Clients: []models.Client{
			{ID: 1, Name: "Ana", CreatedAt: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "Bruno", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 3, Name: "Carla", CreatedAt: jan.End},
		},
		HistoryCounts: map[uint]int64{2: 4, 3: 2},
	}

	rep := Aggregate(in)

	assert.Equal(t, 1, rep.InactiveClients)
	assert.Empty(t, rep.LapsedRecurring)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "33.33", Percent(1, 3).StringFixed(2))
	assert.Equal(t, "66.67", Percent(2, 3).StringFixed(2))
	assert.True(t, Percent(5, 0).IsZero())
}

func TestNewPeriod(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	p, err := NewPeriod(2024, time.December, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, loc), p.Start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), p.End)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, loc), p.LookbackStart())

	_, err = NewPeriod(2024, 13, loc)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = NewPeriod(0, time.May, loc)
	assert.ErrorIs(t, err, ErrInvalidYear)
}
