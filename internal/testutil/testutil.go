// Package testutil builds in-memory databases and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
)

var seq atomic.Int64

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// Ctx returns a context whose active company is c.
func Ctx(c *models.Company) context.Context {
	return tenant.NewContext(context.Background(), c)
}

// next returns a value unique within the test binary.
func next() int64 {
	return seq.Add(1)
}

func User(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := next()
	u := &models.User{
		Name:         fmt.Sprintf("user %d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Company(t *testing.T, db *gorm.DB, owner *models.User) *models.Company {
	t.Helper()
	n := next()
	c := &models.Company{
		UserID:    owner.ID,
		CNPJ:      fmt.Sprintf("%014d", n),
		TradeName: fmt.Sprintf("Salão %d", n),
		LegalName: fmt.Sprintf("Salão %d LTDA", n),
		Timezone:  "UTC",
	}
	require.NoError(t, db.Omit("User").Create(c).Error)
	return c
}

func Client(t *testing.T, db *gorm.DB, company *models.Company, name string) *models.Client {
	t.Helper()
	n := next()
	c := &models.Client{
		Owned:   models.Owned{CompanyID: company.ID, Active: true},
		Name:    name,
		CPF:     fmt.Sprintf("%011d", n),
		Phone:   fmt.Sprintf("+55%d", 11900000000+n),
		Address: "Rua A, 1",
	}
	require.NoError(t, db.Omit("Company").Create(c).Error)
	return c
}

func Worker(t *testing.T, db *gorm.DB, company *models.Company, name string) *models.Worker {
	t.Helper()
	n := next()
	w := &models.Worker{
		Owned: models.Owned{CompanyID: company.ID, Active: true},
		Name:  name,
		CPF:   fmt.Sprintf("%011d", n),
		Phone: fmt.Sprintf("+55%d", 21900000000+n),
	}
	require.NoError(t, db.Omit("Company").Create(w).Error)
	return w
}

func ServiceType(t *testing.T, db *gorm.DB, company *models.Company, name, price string) *models.ServiceType {
	t.Helper()
	st := &models.ServiceType{
		Owned: models.Owned{CompanyID: company.ID, Active: true},
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Omit("Company").Create(st).Error)
	return st
}

// Appointment inserts a row directly, bypassing reference checks.
func Appointment(
	t *testing.T,
	db *gorm.DB,
	company *models.Company,
	client *models.Client,
	st *models.ServiceType,
	worker *models.Worker,
	at time.Time,
	status string,
) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		Owned:         models.Owned{CompanyID: company.ID, Active: true},
		ScheduledAt:   at.UTC(),
		Status:        status,
		ClientID:      client.ID,
		ServiceTypeID: st.ID,
		WorkerID:      worker.ID,
	}
	require.NoError(t, db.Omit("Company", "Client", "ServiceType", "Worker").Create(ap).Error)
	return ap
}

// Backdate overwrites the creation time of row.
func Backdate(t *testing.T, db *gorm.DB, row any, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(row).UpdateColumn("created_at", at.UTC()).Error)
}

// Deactivate soft-deletes row in place.
func Deactivate(t *testing.T, db *gorm.DB, row any) {
	t.Helper()
	require.NoError(t, db.Model(row).Update("active", false).Error)
}
