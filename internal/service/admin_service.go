package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
)

// AdminService hosts the administrative operations that need a real store
// transaction instead of the per-request check-then-write sequence.
type AdminService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAdminService(db *gorm.DB, log *zap.Logger) *AdminService {
	return &AdminService{db: db, log: log}
}

// ReassignDoctors moves every doctor from one department to another inside
// a single transaction: two existence reads, a count, the reassignment
// write, and the audit row either all commit or all roll back.
func (s *AdminService) ReassignDoctors(ctx context.Context, fromID, toID int64, actor Actor) (int64, error) {
	if fromID <= 0 || toID <= 0 {
		return 0, &ValidationError{Fields: []string{"from_department_id and to_department_id must be positive integers"}}
	}
	if fromID == toID {
		return 0, &ValidationError{Fields: []string{"from_department_id and to_department_id must differ"}}
	}

	var moved int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []int64{fromID, toID} {
			var n int64
			if err := tx.Model(&department.Department{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return department.ErrDepartmentNotFound
			}
		}

		res := tx.Model(&doctor.Doctor{}).
			Where("department_id = ?", fromID).
			Update("department_id", toID)
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected

		entry := &domain.AuditLog{
			UserID:       actor.UserID,
			UserRole:     domain.Role(actor.Role),
			IPAddress:    actor.IP,
			RequestID:    actor.RequestID,
			Action:       domain.ActionUpdate,
			ResourceType: "department",
			ResourceID:   fmt.Sprintf("%d", fromID),
			Changes:      fmt.Sprintf(`{"reassigned_to":%d,"doctors_moved":%d}`, toID, moved),
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("doctors reassigned",
		zap.Int64("from_department", fromID),
		zap.Int64("to_department", toID),
		zap.Int64("moved", moved),
	)
	return moved, nil
}
