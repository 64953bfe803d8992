package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain/patient"
)

func newPatientService(t *testing.T) (*PatientService, *fakePatientRepo) {
	t.Helper()
	audit, _ := newTestAudit()
	t.Cleanup(audit.Shutdown)
	repo := newFakePatientRepo()
	return NewPatientService(repo, audit, zap.NewNop()), repo
}

func TestPatientCreateNormalizesCPF(t *testing.T) {
	svc, _ := newPatientService(t)

	p, err := svc.Create(context.Background(), &patient.CreatePatientCommand{
		Name:      "Maria Silva",
		CPF:       "529.982.247-25",
		BirthDate: "1990-06-01",
	}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", p.CPF)
	assert.Equal(t, "1990-06-01", p.BirthDate)
}

func TestPatientCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  patient.CreatePatientCommand
		want string
	}{
		{"blank name", patient.CreatePatientCommand{Name: " ", CPF: "52998224725"}, "name is required"},
		{"blank cpf", patient.CreatePatientCommand{Name: "Maria Silva"}, "cpf is required"},
		{"bad checksum", patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224724"}, "cpf is not a valid CPF number"},
		{"repeated digits", patient.CreatePatientCommand{Name: "Maria Silva", CPF: "11111111111"}, "cpf is not a valid CPF number"},
		{"bad birth date", patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224725", BirthDate: "1990-02-30"}, "birth_date must be a valid YYYY-MM-DD date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newPatientService(t)
			_, err := svc.Create(context.Background(), &tt.cmd, Actor{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.want)
		})
	}
}

func TestPatientCreateDuplicateCPF(t *testing.T) {
	svc, _ := newPatientService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224725"}, Actor{})
	require.NoError(t, err)

	// The formatted variant normalizes to the same eleven digits.
	_, err = svc.Create(ctx, &patient.CreatePatientCommand{Name: "Outra Maria", CPF: "529.982.247-25"}, Actor{})
	assert.ErrorIs(t, err, patient.ErrCPFTaken)
}

func TestPatientUpdateKeepsOwnCPF(t *testing.T) {
	svc, _ := newPatientService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224725"}, Actor{})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, &patient.UpdatePatientCommand{
		Name:    "Maria Silva Santos",
		CPF:     "52998224725",
		Address: "Rua das Flores, 100",
	}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva Santos", updated.Name)
	assert.Equal(t, "Rua das Flores, 100", updated.Address)
}

func TestPatientUpdateCPFTakenByOther(t *testing.T) {
	svc, _ := newPatientService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224725"}, Actor{})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, &patient.CreatePatientCommand{Name: "Joao Souza", CPF: "11144477735"}, Actor{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p2.ID, &patient.UpdatePatientCommand{Name: "Joao Souza", CPF: "52998224725"}, Actor{})
	assert.ErrorIs(t, err, patient.ErrCPFTaken)
}

func TestPatientUpdateMissingTargetWinsOverBadPayload(t *testing.T) {
	svc, _ := newPatientService(t)

	_, err := svc.Update(context.Background(), 42, &patient.UpdatePatientCommand{}, Actor{})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestPatientDelete(t *testing.T) {
	svc, _ := newPatientService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &patient.CreatePatientCommand{Name: "Maria Silva", CPF: "52998224725"}, Actor{})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, p.ID, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", removed.Name)

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}
