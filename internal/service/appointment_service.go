package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/appointment"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/domain/patient"
	"github.com/caredesk/hospital-api/internal/validate"
)

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		log:         log,
	}
}

func (s *AppointmentService) List(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) Create(ctx context.Context, cmd *appointment.CreateAppointmentCommand, actor Actor) (*appointment.Appointment, error) {
	if err := validateAppointmentFields(cmd.PatientID, cmd.DoctorID, cmd.AppointmentDate, cmd.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return nil, err
	}

	booked, err := s.repo.ExistsByBooking(ctx, cmd.PatientID, cmd.DoctorID, cmd.AppointmentDate, nil)
	if err != nil {
		s.log.Error("failed to check booking uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if booked {
		return nil, appointment.ErrDuplicateBooking
	}

	a := &appointment.Appointment{
		PatientID:       cmd.PatientID,
		DoctorID:        cmd.DoctorID,
		AppointmentDate: cmd.AppointmentDate,
		DurationMinutes: cmd.DurationMinutes,
		Diagnosis:       strings.TrimSpace(cmd.Diagnosis),
		Notes:           strings.TrimSpace(cmd.Notes),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, appointment.ErrDuplicateBooking) {
			return nil, err
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.LogAction(domain.ActionCreate, "appointment", strconv.FormatInt(a.ID, 10), actor)
	return a, nil
}

func (s *AppointmentService) Update(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand, actor Actor) (*appointment.Appointment, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := validateAppointmentFields(cmd.PatientID, cmd.DoctorID, cmd.AppointmentDate, cmd.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return nil, err
	}

	booked, err := s.repo.ExistsByBooking(ctx, cmd.PatientID, cmd.DoctorID, cmd.AppointmentDate, &id)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if booked {
		return nil, appointment.ErrDuplicateBooking
	}

	a, err := s.repo.Update(ctx, id, &appointment.UpdateAppointmentCommand{
		PatientID:       cmd.PatientID,
		DoctorID:        cmd.DoctorID,
		AppointmentDate: cmd.AppointmentDate,
		DurationMinutes: cmd.DurationMinutes,
		Diagnosis:       strings.TrimSpace(cmd.Diagnosis),
		Notes:           strings.TrimSpace(cmd.Notes),
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionUpdate, "appointment", strconv.FormatInt(id, 10), actor)
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64, actor Actor) (*appointment.Appointment, error) {
	a, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionDelete, "appointment", strconv.FormatInt(id, 10), actor)
	return a, nil
}

// checkReferences verifies both foreign keys in the application tier. The
// store's constraints remain the final authority under concurrency.
func (s *AppointmentService) checkReferences(ctx context.Context, patientID, doctorID int64) error {
	exists, err := s.patientRepo.ExistsByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("verifying patient: %w", err)
	}
	if !exists {
		return appointment.ErrUnknownPatient
	}

	exists, err = s.doctorRepo.ExistsByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("verifying doctor: %w", err)
	}
	if !exists {
		return appointment.ErrUnknownDoctor
	}
	return nil
}

func validateAppointmentFields(patientID, doctorID int64, date string, durationMinutes int) error {
	var errs []string

	if patientID <= 0 {
		errs = append(errs, "patient_id must be a positive integer")
	}
	if doctorID <= 0 {
		errs = append(errs, "doctor_id must be a positive integer")
	}
	if date == "" {
		errs = append(errs, "appointment_date is required")
	} else if !validate.CalendarDate(date) {
		errs = append(errs, "appointment_date must be a valid YYYY-MM-DD date")
	}
	if durationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be a positive integer")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
