package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/domain/doctor"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) List(ctx context.Context) ([]*doctor.Doctor, error) {
	rows := make([]*doctor.Doctor, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *DoctorRepository) ExistsByCRM(ctx context.Context, crm string, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("crm = ?", crm)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return doctor.ErrCRMTaken
	}
	return err
}

func (r *DoctorRepository) Update(ctx context.Context, id int64, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	// department_id goes through the map even when nil so a full-replace
	// update can clear the reference.
	tx := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          cmd.Name,
			"crm":           cmd.CRM,
			"specialty":     cmd.Specialty,
			"hire_date":     cmd.HireDate,
			"department_id": cmd.DepartmentID,
		})
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, doctor.ErrCRMTaken
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, doctor.ErrDoctorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) (*doctor.Doctor, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return d, nil
}
