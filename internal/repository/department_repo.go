// Package repository provides the GORM-backed implementations of the
// domain repository interfaces. Every query goes through GORM's
// parameterized builders; caller-supplied values never reach statement
// text. The connection is opened with TranslateError, so unique-constraint
// violations surface as gorm.ErrDuplicatedKey and are mapped to the domain
// duplicate errors here.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/domain/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	rows := make([]*department.Department, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*department.Department, error) {
	var d department.Department
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, department.ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&department.Department{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *DepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&department.Department{}).
		Where("name = ?", name)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return department.ErrDepartmentNameTaken
	}
	return err
}

func (r *DepartmentRepository) Update(ctx context.Context, id int64, cmd *department.UpdateDepartmentCommand) (*department.Department, error) {
	tx := r.db.WithContext(ctx).
		Model(&department.Department{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":     cmd.Name,
			"location": cmd.Location,
		})
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, department.ErrDepartmentNameTaken
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, department.ErrDepartmentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int64) (*department.Department, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&department.Department{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return d, nil
}
