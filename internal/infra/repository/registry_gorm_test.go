package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestRegistry_SearchByName(t *testing.T) {
	db := testutil.NewDB(t)
	x := testutil.Company(t, db, testutil.User(t, db))
	testutil.Client(t, db, x, "Ana Souza")
	testutil.Client(t, db, x, "Bruno")
	testutil.Deactivate(t, db, testutil.Client(t, db, x, "Anabela"))

	repo := NewRegistry[models.Client](db)
	ctx := testutil.Ctx(x)

	rows, err := repo.Search(ctx, "ANA", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Souza", rows[0].Name)

	rows, err = repo.Search(ctx, "ana", true)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.Search(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRegistry_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	x := testutil.Company(t, db, testutil.User(t, db))
	testutil.Client(t, db, x, "Ana")
	testutil.Client(t, db, x, "Maria_Clara")

	repo := NewRegistry[models.Client](db)
	ctx := testutil.Ctx(x)

	for _, text := range []string{"%", "A_a", `\`} {
		rows, err := repo.Search(ctx, text, false)
		require.NoError(t, err, text)
		assert.Empty(t, rows, text)
	}

	rows, err := repo.Search(ctx, "_", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria_Clara", rows[0].Name)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% OFF"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("A_b"))
	assert.Equal(t, `%c:\\x%`, ContainsPattern(`C:\x`))
}

func TestRegistry_SetImage(t *testing.T) {
	db := testutil.NewDB(t)
	x := testutil.Company(t, db, testutil.User(t, db))
	w := testutil.Worker(t, db, x, "Wesley")

	repo := NewRegistry[models.Worker](db)
	require.NoError(t, repo.SetImage(testutil.Ctx(x), w.ID, "workers/1.webp"))

	got, err := repo.Get(testutil.Ctx(x), w.ID)
	require.NoError(t, err)
	assert.Equal(t, "workers/1.webp", got.ImageKey)
}

func TestWorkerRepo_SearchWithCounts(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.User(t, db)
	x := newSalon(t, db, owner, "Ana", "Corte", "Wesley")
	y := newSalon(t, db, owner, "Bia", "Escova", "Yuri")
	idle := testutil.Worker(t, db, x.company, "Ivo")

	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	x.book(t, db, at, "P")
	x.book(t, db, at, "P")
	x.book(t, db, at, "F")
	testutil.Deactivate(t, db, x.book(t, db, at, "P"))
	y.book(t, db, at, "P")

	repo := NewWorkerGormRepository(db)

	rows, err := repo.SearchWithCounts(testutil.Ctx(x.company), "", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[uint]WorkerSummary{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	assert.Equal(t, int64(3), byID[x.worker.ID].TotalAppointments)
	assert.Equal(t, int64(2), byID[x.worker.ID].PendingAppointments)
	assert.Zero(t, byID[idle.ID].TotalAppointments)
}
