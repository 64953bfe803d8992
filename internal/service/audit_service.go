package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditService persists audit entries asynchronously so record writes are
// never blocked on the trail.
type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}
}

const auditBufferSize = 4096

func NewAuditService(repo AuditRepository, m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAction enqueues an audit entry. If the buffer is full the entry is
// dropped and counted; the write path is never blocked.
func (s *AuditService) LogAction(action domain.AuditAction, resourceType, resourceID string, actor Actor) {
	entry := &domain.AuditLog{
		UserID:       actor.UserID,
		UserRole:     domain.Role(actor.Role),
		IPAddress:    actor.IP,
		RequestID:    actor.RequestID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}

	select {
	case s.entries <- entry:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit buffer full, dropping entry",
			zap.String("action", string(action)),
			zap.String("resource", resourceType),
		)
	}
}

// Shutdown drains the buffer, waiting up to ten seconds.
func (s *AuditService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit entry", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
