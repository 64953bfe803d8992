package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/validate"
)

type DoctorService struct {
	repo     doctor.Repository
	deptRepo department.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, deptRepo department.Repository, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, deptRepo: deptRepo, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) List(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) Get(ctx context.Context, id int64) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand, actor Actor) (*doctor.Doctor, error) {
	if err := validateDoctorFields(cmd.Name, cmd.CRM, cmd.HireDate, cmd.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.checkDepartmentRef(ctx, cmd.DepartmentID); err != nil {
		return nil, err
	}

	crm := strings.TrimSpace(cmd.CRM)
	taken, err := s.repo.ExistsByCRM(ctx, crm, nil)
	if err != nil {
		s.log.Error("failed to check CRM uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, doctor.ErrCRMTaken
	}

	d := &doctor.Doctor{
		Name:         strings.TrimSpace(cmd.Name),
		CRM:          crm,
		Specialty:    strings.TrimSpace(cmd.Specialty),
		HireDate:     cmd.HireDate,
		DepartmentID: cmd.DepartmentID,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, doctor.ErrCRMTaken) {
			return nil, err
		}
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.auditSvc.LogAction(domain.ActionCreate, "doctor", strconv.FormatInt(d.ID, 10), actor)
	return d, nil
}

func (s *DoctorService) Update(ctx context.Context, id int64, cmd *doctor.UpdateDoctorCommand, actor Actor) (*doctor.Doctor, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := validateDoctorFields(cmd.Name, cmd.CRM, cmd.HireDate, cmd.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.checkDepartmentRef(ctx, cmd.DepartmentID); err != nil {
		return nil, err
	}

	crm := strings.TrimSpace(cmd.CRM)
	// Excluding the target id lets a doctor keep their current CRM on a
	// full-replace update.
	taken, err := s.repo.ExistsByCRM(ctx, crm, &id)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, doctor.ErrCRMTaken
	}

	d, err := s.repo.Update(ctx, id, &doctor.UpdateDoctorCommand{
		Name:         strings.TrimSpace(cmd.Name),
		CRM:          crm,
		Specialty:    strings.TrimSpace(cmd.Specialty),
		HireDate:     cmd.HireDate,
		DepartmentID: cmd.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionUpdate, "doctor", strconv.FormatInt(id, 10), actor)
	return d, nil
}

func (s *DoctorService) Delete(ctx context.Context, id int64, actor Actor) (*doctor.Doctor, error) {
	// Appointments referencing this doctor are removed by the store's
	// cascade.
	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionDelete, "doctor", strconv.FormatInt(id, 10), actor)
	return d, nil
}

func (s *DoctorService) checkDepartmentRef(ctx context.Context, departmentID *int64) error {
	if departmentID == nil {
		return nil
	}
	exists, err := s.deptRepo.ExistsByID(ctx, *departmentID)
	if err != nil {
		return fmt.Errorf("verifying department: %w", err)
	}
	if !exists {
		return doctor.ErrUnknownDepartment
	}
	return nil
}

func validateDoctorFields(name, crm, hireDate string, departmentID *int64) error {
	var errs []string

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(crm) == "" {
		errs = append(errs, "crm is required")
	}
	if hireDate != "" && !validate.CalendarDate(hireDate) {
		errs = append(errs, "hire_date must be a valid YYYY-MM-DD date")
	}
	if departmentID != nil && *departmentID <= 0 {
		errs = append(errs, "department_id must be a positive integer")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
