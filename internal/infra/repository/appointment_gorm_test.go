package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

type salon struct {
	company *models.Company
	client  *models.Client
	service *models.ServiceType
	worker  *models.Worker
}

func newSalon(t *testing.T, db *gorm.DB, owner *models.User, client, service, worker string) salon {
	t.Helper()
	c := testutil.Company(t, db, owner)
	return salon{
		company: c,
		client:  testutil.Client(t, db, c, client),
		service: testutil.ServiceType(t, db, c, service, "50.00"),
		worker:  testutil.Worker(t, db, c, worker),
	}
}

func (s salon) book(t *testing.T, db *gorm.DB, at time.Time, status string) *models.Appointment {
	t.Helper()
	return testutil.Appointment(t, db, s.company, s.client, s.service, s.worker, at, status)
}

func TestAppointmentRepo_DailySheetIsolatesTenants(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana", "Corte", "Wesley")
	y := newSalon(t, db, owner, "Bia", "Escova", "Yuri")

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	x.book(t, db, day.Add(9*time.Hour), "P")
	x.book(t, db, day.Add(10*time.Hour), "E")
	x.book(t, db, day.Add(11*time.Hour), "F")
	y.book(t, db, day.Add(9*time.Hour), "P")
	x.book(t, db, day.Add(-time.Hour), "P")

	repo := NewAppointmentGormRepository(db)

	aps, err := repo.ListForPeriod(testutil.Ctx(x.company), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, aps, 3)
	for _, ap := range aps {
		assert.Equal(t, x.company.ID, ap.CompanyID)
		assert.Equal(t, "Ana", ap.Client.Name)
		assert.Equal(t, "Wesley", ap.Worker.Name)
	}

	sheet, err := domain.NewDailySheet(day, 0, aps)
	require.NoError(t, err)
	assert.Len(t, sheet.Pending, 1)
	assert.Len(t, sheet.Executing, 1)
	assert.Len(t, sheet.Finished, 1)
	assert.Empty(t, sheet.Cancelled)
}

func TestAppointmentRepo_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	x := newSalon(t, db, testutil.User(t, db), "Ana", "Corte", "Wesley")
	x.book(t, db, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), "P")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	for _, text := range []string{"%", "_", "A_a", `\`} {
		aps, err := repo.Search(ctx, domain.SearchQuery{Text: text})
		require.NoError(t, err, text)
		assert.Empty(t, aps, text)
	}

	promo := testutil.ServiceType(t, db, x.company, "Corte 50% off", "25.00")
	testutil.Appointment(t, db, x.company, x.client, promo, x.worker, time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC), "P")

	aps, err := repo.Search(ctx, domain.SearchQuery{Text: "50%"})
	require.NoError(t, err)
	require.Len(t, aps, 1)
	assert.Equal(t, promo.ID, aps[0].ServiceTypeID)
}

func TestAppointmentRepo_SearchMatchesRelatedNames(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana Souza", "Corte", "Wesley")
	y := newSalon(t, db, owner, "Ana Lima", "Corte", "Yuri")

	may10 := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	first := x.book(t, db, may10, "P")
	second := x.book(t, db, may10.AddDate(0, 0, 5), "F")
	y.book(t, db, may10, "P")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	for _, text := range []string{"ana", "CORTE", "wes"} {
		aps, err := repo.Search(ctx, domain.SearchQuery{Text: text})
		require.NoError(t, err, text)
		require.Len(t, aps, 2, text)
		assert.Equal(t, second.ID, aps[0].ID, "newest first")
	}

	aps, err := repo.Search(ctx, domain.SearchQuery{Text: "   "})
	require.NoError(t, err)
	assert.Len(t, aps, 2)

	aps, err = repo.Search(ctx, domain.SearchQuery{Text: "yuri"})
	require.NoError(t, err)
	assert.Empty(t, aps)

	end := may10.AddDate(0, 0, 1)
	aps, err = repo.Search(ctx, domain.SearchQuery{Text: "ana", End: &end})
	require.NoError(t, err)
	require.Len(t, aps, 1)
	assert.Equal(t, first.ID, aps[0].ID)
}

func TestAppointmentRepo_FinalizeRace(t *testing.T) {
	db := testutil.NewDB(t)
	x := newSalon(t, db, testutil.User(t, db), "Ana", "Corte", "Wesley")
	ap := x.book(t, db, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), "P")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	ok, err := repo.FinalizeIfEligible(ctx, ap.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.FinalizeIfEligible(ctx, ap.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Get(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "F", got.Status)
}

func TestAppointmentRepo_FinalizeIgnoresOtherTenantsAndCancelled(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana", "Corte", "Wesley")
	y := newSalon(t, db, owner, "Bia", "Escova", "Yuri")

	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	foreign := y.book(t, db, at, "P")
	cancelled := x.book(t, db, at, "C")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	for _, id := range []uint{foreign.ID, cancelled.ID} {
		ok, err := repo.FinalizeIfEligible(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	var stored models.Appointment
	require.NoError(t, db.First(&stored, foreign.ID).Error)
	assert.Equal(t, "P", stored.Status)
}

func TestAppointmentRepo_UpdateStatusWritesOneColumn(t *testing.T) {
	db := testutil.NewDB(t)
	x := newSalon(t, db, testutil.User(t, db), "Ana", "Corte", "Wesley")
	ap := x.book(t, db, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), "P")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	loaded, err := repo.Get(ctx, ap.ID)
	require.NoError(t, err)
	loaded.Status = "E"
	loaded.WorkerID = 424242
	require.NoError(t, repo.UpdateStatus(ctx, loaded))

	var stored models.Appointment
	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, "E", stored.Status)
	assert.Equal(t, x.worker.ID, stored.WorkerID)
}

func TestAppointmentRepo_Occupancy(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana", "Corte", "Wesley")
	y := newSalon(t, db, owner, "Bia", "Escova", "Yuri")
	idle := testutil.Worker(t, db, x.company, "Ivo")
	gone := testutil.Worker(t, db, x.company, "Gil")

	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	x.book(t, db, now.Add(-10*time.Minute), "E")
	x.book(t, db, now.Add(5*time.Minute), "E")
	x.book(t, db, now, "P")
	testutil.Appointment(t, db, x.company, x.client, x.service, idle, now.Add(-2*time.Hour), "E")
	testutil.Appointment(t, db, x.company, x.client, x.service, gone, now, "E")
	testutil.Deactivate(t, db, gone)
	y.book(t, db, now, "E")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	start, end := domain.OccupancyWindow(now, 30*time.Minute)
	occupied, err := repo.CountOccupiedWorkers(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(1), occupied)

	total, err := repo.CountActiveWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestAppointmentRepo_ChoicesAreActiveAndScoped(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana", "Corte", "Wesley")
	newSalon(t, db, owner, "Bia", "Escova", "Yuri")
	testutil.Deactivate(t, db, testutil.Client(t, db, x.company, "Zé"))

	repo := NewAppointmentGormRepository(db)

	choices, err := repo.Choices(testutil.Ctx(x.company))
	require.NoError(t, err)
	require.Len(t, choices.Clients, 1)
	assert.Equal(t, "Ana", choices.Clients[0].Name)
	require.Len(t, choices.ServiceTypes, 1)
	require.Len(t, choices.Workers, 1)
	assert.Len(t, choices.Statuses, 4)
}

func TestAppointmentRepo_SoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	x := newSalon(t, db, testutil.User(t, db), "Ana", "Corte", "Wesley")
	ap := x.book(t, db, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), "P")

	repo := NewAppointmentGormRepository(db)
	ctx := testutil.Ctx(x.company)

	require.NoError(t, repo.SoftDelete(ctx, ap.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, ap.ID), ErrAlreadyDeleted)

	aps, err := repo.Search(ctx, domain.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, aps)

	aps, err = repo.Search(ctx, domain.SearchQuery{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, aps, 1)
}
