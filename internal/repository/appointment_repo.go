package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	rows := make([]*appointment.Appointment, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *AppointmentRepository) ExistsByBooking(ctx context.Context, patientID, doctorID int64, date string, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("patient_id = ? AND doctor_id = ? AND appointment_date = ?", patientID, doctorID, date)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appointment.ErrDuplicateBooking
	}
	return err
}

func (r *AppointmentRepository) Update(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"patient_id":       cmd.PatientID,
			"doctor_id":        cmd.DoctorID,
			"appointment_date": cmd.AppointmentDate,
			"duration_minutes": cmd.DurationMinutes,
			"diagnosis":        cmd.Diagnosis,
			"notes":            cmd.Notes,
		})
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, appointment.ErrDuplicateBooking
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, appointment.ErrAppointmentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) (*appointment.Appointment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return a, nil
}
