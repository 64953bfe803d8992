package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReassignDoctorsRejectsBadIDs(t *testing.T) {
	svc := NewAdminService(nil, zap.NewNop())

	tests := []struct {
		name string
		from int64
		to   int64
	}{
		{"zero source", 0, 2},
		{"negative source", -1, 2},
		{"zero target", 1, 0},
		{"same department", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReassignDoctors(context.Background(), tt.from, tt.to, Actor{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
		})
	}
}
