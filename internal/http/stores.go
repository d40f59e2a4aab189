package http

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/audit"
	"github.com/mrlokans/digital-library/internal/entities"
)

// Each controller depends on its own store interface. Both the SQLite
// repositories and the MongoDB repositories implement them.

// BookStore provides CRUD access to books.
type BookStore interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	UpdateBook(ctx context.Context, id string, update entities.BookUpdate) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// MemberStore provides CRUD access to members.
type MemberStore interface {
	CreateMember(ctx context.Context, member *entities.Member) error
	ListMembers(ctx context.Context) ([]entities.Member, error)
	GetMemberByID(ctx context.Context, id string) (*entities.Member, error)
	UpdateMember(ctx context.Context, id string, update entities.MemberUpdate) (*entities.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// StaffStore provides CRUD access to staff.
type StaffStore interface {
	CreateStaff(ctx context.Context, staff *entities.Staff) error
	ListStaff(ctx context.Context) ([]entities.Staff, error)
	GetStaffByID(ctx context.Context, id string) (*entities.Staff, error)
	UpdateStaff(ctx context.Context, id string, update entities.StaffUpdate) (*entities.Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}

// AuditEventReader lists recorded audit events.
type AuditEventReader interface {
	GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Auditor records mutation attempts.
type Auditor interface {
	LogMutation(meta audit.RequestMeta, eventType entities.AuditEventType, entityType, entityID string, err error)
}

// MutationObserver counts mutation attempts.
type MutationObserver interface {
	ObserveMutation(entity, action string, err error)
}

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ControllerDeps holds what every record controller shares. Nil Auditor
// and Observer disable the respective recording.
type ControllerDeps struct {
	QueryTimeout time.Duration
	Auditor      Auditor
	Observer     MutationObserver
	Logger       *zap.Logger
}

func (d ControllerDeps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// recordMutation forwards a store mutation to the auditor and the observer.
func (d ControllerDeps) recordMutation(meta audit.RequestMeta, eventType entities.AuditEventType, entityType, entityID string, err error) {
	if d.Auditor != nil {
		d.Auditor.LogMutation(meta, eventType, entityType, entityID, err)
	}
	if d.Observer != nil {
		d.Observer.ObserveMutation(entityType, string(eventType), err)
	}
}
