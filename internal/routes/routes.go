package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Deps are the process-wide collaborators of the API.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Sessions session.Store
	Audit    *audit.Dispatcher
	// Images is nil when uploads are not configured.
	Images media.Store
	DNS    validators.Resolver
	Now    func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	users := infraRepo.NewUserGormRepository(d.DB)
	companies := infraRepo.NewCompanyGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	clients := infraRepo.NewRegistry[models.Client](d.DB)
	workers := infraRepo.NewWorkerGormRepository(d.DB)
	serviceTypes := infraRepo.NewRegistry[models.ServiceType](d.DB)
	reportRepo := infraRepo.NewReportGormRepository(d.DB)

	resolver := tenant.NewResolver(d.Sessions, companies)
	auditLogs := audit.New(d.DB)

	var images *handlers.Images
	if d.Images != nil {
		images = handlers.NewImages(
			media.NewProcessor(media.DefaultMaxSide, media.DefaultQuality),
			d.Images,
			d.Audit,
		)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	dailySheetUC := ucAppointment.NewGetDailySheet(appointmentRepo, d.Now)
	occupancyUC := ucAppointment.NewGetOccupancy(appointmentRepo, cfg.OccupancyWindow, d.Now)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(users, d.Sessions, d.DNS, cfg, d.Log)
	meHandler := handlers.NewMeHandler(users, d.Log)
	companyHandler := handlers.NewCompanyHandler(companies, resolver, images, d.Audit, cfg.DefaultTimezone, d.Log)

	clientHandler := handlers.NewClientHandler(clients, images, d.Audit, d.Log)
	workerHandler := handlers.NewWorkerHandler(workers, images, d.Audit, d.Log)
	serviceTypeHandler := handlers.NewServiceTypeHandler(serviceTypes, d.Audit, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewChangeStatus(appointmentRepo, d.Audit),
		ucAppointment.NewFinalizeAppointments(appointmentRepo, d.Audit),
		ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewSearchAppointments(appointmentRepo),
		dailySheetUC,
		ucAppointment.NewGetDashboard(dailySheetUC, occupancyUC),
		d.Log,
	)

	reportHandler := handlers.NewReportHandler(
		ucReport.NewGenerateMonthlyReport(reportRepo, d.Now),
		report.DefaultLocale,
		d.Now,
		d.Log,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogs, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// USER (no active company needed)
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(cfg, d.Sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/companies", companyHandler.List)
			secured.POST("/companies", companyHandler.Create)
			secured.POST("/companies/:id/select", companyHandler.Select)
		}

		// ------------------------------
		// TENANT (active company required)
		// ------------------------------
		scoped := secured.Group("")
		scoped.Use(middleware.TenantMiddleware(resolver, d.Log))
		{
			scoped.GET("/company", companyHandler.Current)
			scoped.GET("/company/image", companyHandler.Image)
			scoped.POST("/company/image", companyHandler.UploadImage)

			scoped.GET("/clients", clientHandler.List)
			scoped.POST("/clients", clientHandler.Create)
			scoped.DELETE("/clients/:id", clientHandler.Delete)
			scoped.POST("/clients/:id/restore", clientHandler.Restore)
			scoped.GET("/clients/:id/image", clientHandler.Image)
			scoped.POST("/clients/:id/image", clientHandler.UploadImage)

			scoped.GET("/workers", workerHandler.List)
			scoped.POST("/workers", workerHandler.Create)
			scoped.DELETE("/workers/:id", workerHandler.Delete)
			scoped.POST("/workers/:id/restore", workerHandler.Restore)
			scoped.GET("/workers/:id/image", workerHandler.Image)
			scoped.POST("/workers/:id/image", workerHandler.UploadImage)

			scoped.GET("/service-types", serviceTypeHandler.List)
			scoped.POST("/service-types", serviceTypeHandler.Create)
			scoped.DELETE("/service-types/:id", serviceTypeHandler.Delete)
			scoped.POST("/service-types/:id/restore", serviceTypeHandler.Restore)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			scoped.GET("/appointments", appointmentHandler.List)
			scoped.POST("/appointments", appointmentHandler.Create)
			scoped.GET("/appointments/choices", appointmentHandler.Choices)
			scoped.GET("/appointments/daily", appointmentHandler.DailySheet)
			scoped.POST("/appointments/finalize", appointmentHandler.Finalize)
			scoped.GET("/appointments/:id", appointmentHandler.Get)
			scoped.PUT("/appointments/:id", appointmentHandler.Update)
			scoped.DELETE("/appointments/:id", appointmentHandler.Delete)
			scoped.POST("/appointments/:id/advance", appointmentHandler.Advance)
			scoped.POST("/appointments/:id/revert", appointmentHandler.Revert)
			scoped.POST("/appointments/:id/status", appointmentHandler.SetStatus)
			scoped.POST("/appointments/:id/finalize", appointmentHandler.FinalizeOne)

			scoped.GET("/dashboard", appointmentHandler.Dashboard)

			scoped.GET("/reports/monthly", reportHandler.Monthly)
			scoped.GET("/reports/monthly.pdf", reportHandler.MonthlyPDF)
			scoped.GET("/reports/monthly.xlsx", reportHandler.MonthlyXLSX)

			scoped.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
