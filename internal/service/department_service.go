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
)

type DepartmentService struct {
	repo     department.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDepartmentService(repo department.Repository, auditSvc *AuditService, log *zap.Logger) *DepartmentService {
	return &DepartmentService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *DepartmentService) List(ctx context.Context) ([]*department.Department, error) {
	return s.repo.List(ctx)
}

func (s *DepartmentService) Get(ctx context.Context, id int64) (*department.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, cmd *department.CreateDepartmentCommand, actor Actor) (*department.Department, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, &ValidationError{Fields: []string{"name is required"}}
	}

	taken, err := s.repo.ExistsByName(ctx, name, nil)
	if err != nil {
		s.log.Error("failed to check department name uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, department.ErrDepartmentNameTaken
	}

	d := &department.Department{
		Name:     name,
		Location: strings.TrimSpace(cmd.Location),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		// The constraint is the final authority; a concurrent insert that
		// slipped past the pre-check reports the same duplicate error.
		if errors.Is(err, department.ErrDepartmentNameTaken) {
			return nil, err
		}
		s.log.Error("failed to create department", zap.Error(err))
		return nil, fmt.Errorf("creating department: %w", err)
	}

	s.auditSvc.LogAction(domain.ActionCreate, "department", strconv.FormatInt(d.ID, 10), actor)
	return d, nil
}

func (s *DepartmentService) Update(ctx context.Context, id int64, cmd *department.UpdateDepartmentCommand, actor Actor) (*department.Department, error) {
	// Target existence first, field validation second: a bad payload
	// against a missing row is still a 404.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, &ValidationError{Fields: []string{"name is required"}}
	}

	taken, err := s.repo.ExistsByName(ctx, name, &id)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, department.ErrDepartmentNameTaken
	}

	d, err := s.repo.Update(ctx, id, &department.UpdateDepartmentCommand{
		Name:     name,
		Location: strings.TrimSpace(cmd.Location),
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionUpdate, "department", strconv.FormatInt(id, 10), actor)
	return d, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id int64, actor Actor) (*department.Department, error) {
	// Doctors referencing this department keep their rows; the store
	// clears the reference via ON DELETE SET NULL.
	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionDelete, "department", strconv.FormatInt(id, 10), actor)
	return d, nil
}
