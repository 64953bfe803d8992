package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain/department"
)

func newDepartmentService(t *testing.T) (*DepartmentService, *fakeDepartmentRepo) {
	t.Helper()
	audit, _ := newTestAudit()
	t.Cleanup(audit.Shutdown)
	repo := newFakeDepartmentRepo()
	return NewDepartmentService(repo, audit, zap.NewNop()), repo
}

func TestDepartmentCreate(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "  Cardiology  ", Location: "Wing B"}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, "Cardiology", d.Name)
	assert.Equal(t, "Wing B", d.Location)
}

func TestDepartmentCreateBlankName(t *testing.T) {
	svc, _ := newDepartmentService(t)

	_, err := svc.Create(context.Background(), &department.CreateDepartmentCommand{Name: "   "}, Actor{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name is required")
}

func TestDepartmentCreateDuplicateName(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	assert.ErrorIs(t, err, department.ErrDepartmentNameTaken)
}

func TestDepartmentUpdate(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID, &department.UpdateDepartmentCommand{Name: "Oncology", Location: "Wing C"}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "Wing C", updated.Location)
}

func TestDepartmentUpdateMissingTargetWinsOverBadPayload(t *testing.T) {
	svc, _ := newDepartmentService(t)

	// Even with an invalid payload, an unknown target reports not-found.
	_, err := svc.Update(context.Background(), 42, &department.UpdateDepartmentCommand{Name: ""}, Actor{})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentUpdateNameTakenByOther(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	require.NoError(t, err)
	d2, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Neurology"}, Actor{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, d2.ID, &department.UpdateDepartmentCommand{Name: "Oncology"}, Actor{})
	assert.ErrorIs(t, err, department.ErrDepartmentNameTaken)
}

func TestDepartmentUpdateKeepsOwnName(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	require.NoError(t, err)

	// Re-submitting the current name on a full-replace update is not a
	// conflict with itself.
	updated, err := svc.Update(ctx, d.ID, &department.UpdateDepartmentCommand{Name: "Oncology", Location: "Wing A"}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "Oncology", updated.Name)
}

func TestDepartmentDelete(t *testing.T) {
	svc, repo := newDepartmentService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: "Oncology"}, Actor{})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, d.ID, Actor{})
	require.NoError(t, err)
	assert.Equal(t, "Oncology", removed.Name)

	exists, err := repo.ExistsByID(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDepartmentDeleteMissing(t *testing.T) {
	svc, _ := newDepartmentService(t)

	_, err := svc.Delete(context.Background(), 7, Actor{})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentList(t *testing.T) {
	svc, _ := newDepartmentService(t)
	ctx := context.Background()

	for _, name := range []string{"Oncology", "Neurology", "Pediatrics"} {
		_, err := svc.Create(ctx, &department.CreateDepartmentCommand{Name: name}, Actor{})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
