package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/entities"
)

const (
	maxErrorLen       = 500
	maxUserAgentLen   = 500
	defaultLogTimeout = 5 * time.Second
)

// Repository persists audit events. Implemented by the SQLite and MongoDB backends.
type Repository interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// RequestMeta identifies the client that triggered a mutation.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo    Repository
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, timeout: defaultLogTimeout}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background. Call Wait to drain
// pending writes before closing the store.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			s.logger.Error("failed to log audit event",
				zap.String("action", event.Action),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
		}
	}()
}

// LogMutation records a create, update or delete attempt on a record.
// A non-nil err marks the event as failed.
func (s *Service) LogMutation(meta RequestMeta, eventType entities.AuditEventType, entityType, entityID string, err error) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: describe(eventType, entityType, entityID),
		EntityType:  entityType,
		EntityID:    entityID,
		IPAddress:   meta.IPAddress,
		UserAgent:   truncate(meta.UserAgent, maxUserAgentLen),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// Wait blocks until every pending asynchronous write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, entityType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func describe(eventType entities.AuditEventType, entityType, entityID string) string {
	var verb string
	switch eventType {
	case entities.AuditEventCreate:
		verb = "Created"
	case entities.AuditEventUpdate:
		verb = "Updated"
	case entities.AuditEventDelete:
		verb = "Deleted"
	default:
		verb = string(eventType)
	}
	if entityID == "" {
		return fmt.Sprintf("%s %s", verb, entityType)
	}
	return fmt.Sprintf("%s %s %s", verb, entityType, entityID)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
// Invalid UTF-8 is replaced first since MongoDB rejects it.
func truncate(s string, maxLen int) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
