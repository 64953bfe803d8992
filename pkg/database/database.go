package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/caredesk/hospital-api/internal/config"
	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/appointment"
	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// TranslateError maps driver unique-violation codes to
		// gorm.ErrDuplicatedKey so the repositories can treat the
		// constraint as the final authority on duplicates.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	for _, schema := range []string{"hospital", "auth", "audit"} {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&department.Department{},
		&doctor.Doctor{},
		&patient.Patient{},
		&appointment.Appointment{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints adds the referential rules AutoMigrate does not derive
// from tags: department deletion clears the doctor reference, patient or
// doctor deletion cascades to their appointments.
func createConstraints(db *gorm.DB) error {
	constraints := []struct {
		name  string
		query string
	}{
		{
			name: "fk_doctors_department",
			query: `ALTER TABLE hospital.doctors
				ADD CONSTRAINT fk_doctors_department
				FOREIGN KEY (department_id) REFERENCES hospital.departments (id)
				ON DELETE SET NULL`,
		},
		{
			name: "fk_appointments_patient",
			query: `ALTER TABLE hospital.appointments
				ADD CONSTRAINT fk_appointments_patient
				FOREIGN KEY (patient_id) REFERENCES hospital.patients (id)
				ON DELETE CASCADE`,
		},
		{
			name: "fk_appointments_doctor",
			query: `ALTER TABLE hospital.appointments
				ADD CONSTRAINT fk_appointments_doctor
				FOREIGN KEY (doctor_id) REFERENCES hospital.doctors (id)
				ON DELETE CASCADE`,
		},
	}

	for _, c := range constraints {
		var n int64
		err := db.Raw(
			"SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?",
			c.name,
		).Scan(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Exec(c.query).Error; err != nil {
			return fmt.Errorf("adding constraint %s: %w", c.name, err)
		}
	}

	return nil
}

// SeedAdmin creates the administrative user from config when it does not
// exist yet. A missing admin config is not an error; the /admin routes are
// simply unusable until one is provided.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig, log *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Warn("admin credentials not configured, skipping admin seed")
		return nil
	}

	var n int64
	if err := db.Model(&domain.User{}).Where("email = ?", cfg.Email).Count(&n).Error; err != nil {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user := &domain.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	log.Info("admin user seeded", zap.String("email", cfg.Email))
	return nil
}
