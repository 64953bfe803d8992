package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/patient"
	"github.com/caredesk/hospital-api/internal/validate"
)

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *PatientService) List(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) Get(ctx context.Context, id int64) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) Create(ctx context.Context, cmd *patient.CreatePatientCommand, actor Actor) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.Name, cmd.CPF, cmd.BirthDate); err != nil {
		return nil, err
	}

	cpf := validate.NormalizeCPF(cmd.CPF)
	taken, err := s.repo.ExistsByCPF(ctx, cpf, nil)
	if err != nil {
		s.log.Error("failed to check CPF uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, patient.ErrCPFTaken
	}

	p := &patient.Patient{
		Name:      strings.TrimSpace(cmd.Name),
		CPF:       cpf,
		BirthDate: cmd.BirthDate,
		Address:   strings.TrimSpace(cmd.Address),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, patient.ErrCPFTaken) {
			return nil, err
		}
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.auditSvc.LogAction(domain.ActionCreate, "patient", strconv.FormatInt(p.ID, 10), actor)
	return p, nil
}

func (s *PatientService) Update(ctx context.Context, id int64, cmd *patient.UpdatePatientCommand, actor Actor) (*patient.Patient, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := validatePatientFields(cmd.Name, cmd.CPF, cmd.BirthDate); err != nil {
		return nil, err
	}

	cpf := validate.NormalizeCPF(cmd.CPF)
	taken, err := s.repo.ExistsByCPF(ctx, cpf, &id)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if taken {
		return nil, patient.ErrCPFTaken
	}

	p, err := s.repo.Update(ctx, id, &patient.UpdatePatientCommand{
		Name:      strings.TrimSpace(cmd.Name),
		CPF:       cpf,
		BirthDate: cmd.BirthDate,
		Address:   strings.TrimSpace(cmd.Address),
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionUpdate, "patient", strconv.FormatInt(id, 10), actor)
	return p, nil
}

func (s *PatientService) Delete(ctx context.Context, id int64, actor Actor) (*patient.Patient, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(domain.ActionDelete, "patient", strconv.FormatInt(id, 10), actor)
	return p, nil
}

func validatePatientFields(name, cpf, birthDate string) error {
	var errs []string

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(cpf) == "" {
		errs = append(errs, "cpf is required")
	} else if !validate.CPF(cpf) {
		errs = append(errs, "cpf is not a valid CPF number")
	}
	if birthDate != "" && !validate.CalendarDate(birthDate) {
		errs = append(errs, "birth_date must be a valid YYYY-MM-DD date")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
