package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk/hospital-api/internal/domain"
)

func TestAuditServiceDrainsOnShutdown(t *testing.T) {
	svc, repo := newTestAudit()

	for i := 0; i < 10; i++ {
		svc.LogAction(domain.ActionCreate, "patient", "1", Actor{Role: "staff", IP: "10.0.0.1"})
	}
	svc.Shutdown()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.entries, 10)
	assert.Equal(t, domain.ActionCreate, repo.entries[0].Action)
	assert.Equal(t, "patient", repo.entries[0].ResourceType)
	assert.Equal(t, domain.RoleStaff, repo.entries[0].UserRole)
}
