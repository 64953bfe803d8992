package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	rows := make([]*patient.Patient, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *PatientRepository) ExistsByCPF(ctx context.Context, cpf string, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("cpf = ?", cpf)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return patient.ErrCPFTaken
	}
	return err
}

func (r *PatientRepository) Update(ctx context.Context, id int64, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	tx := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       cmd.Name,
			"cpf":        cmd.CPF,
			"birth_date": cmd.BirthDate,
			"address":    cmd.Address,
		})
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, patient.ErrCPFTaken
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, patient.ErrPatientNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) (*patient.Patient, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Appointments referencing this patient are removed by the store's
	// ON DELETE CASCADE constraint.
	if err := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return p, nil
}
