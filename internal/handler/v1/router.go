package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/config"
	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/handler/middleware"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/auth"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

// Deps is everything the router needs wired in; nothing is looked up from
// package-level state.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger

	JWTManager *auth.JWTManager
	Metrics    *metrics.Collector

	Departments  *service.DepartmentService
	Doctors      *service.DoctorService
	Patients     *service.PatientService
	Appointments *service.AppointmentService
	Auth         *service.AuthService
	Admin        *service.AdminService
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		gin.Recovery(),
	)

	r.GET("/healthz", healthz(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	NewAuthHandler(d.Auth).Register(api)
	NewDepartmentHandler(d.Departments, d.Metrics).Register(api)
	NewDoctorHandler(d.Doctors, d.Metrics).Register(api)
	NewPatientHandler(d.Patients, d.Metrics).Register(api)
	NewAppointmentHandler(d.Appointments, d.Metrics).Register(api)

	admin := api.Group("/", middleware.RequireRole(d.JWTManager, domain.RoleAdmin))
	NewAdminHandler(d.Admin).Register(admin)

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
