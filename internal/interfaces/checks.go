package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/digital-library/internal/audit"
	"github.com/mrlokans/digital-library/internal/database"
	auditRepo "github.com/mrlokans/digital-library/internal/database/audit"
	"github.com/mrlokans/digital-library/internal/database/books"
	"github.com/mrlokans/digital-library/internal/database/members"
	"github.com/mrlokans/digital-library/internal/database/staff"
	"github.com/mrlokans/digital-library/internal/http"
	"github.com/mrlokans/digital-library/internal/metrics"
	"github.com/mrlokans/digital-library/internal/mongodb"
	"github.com/mrlokans/digital-library/internal/scheduler"
)

// =============================================================================
// SQLite Backend
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.MemberStore = (*members.Repository)(nil)
var _ http.StaffStore = (*staff.Repository)(nil)
var _ audit.Repository = (*auditRepo.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// MongoDB Backend
// =============================================================================

var _ http.BookStore = (*mongodb.BookRepository)(nil)
var _ http.MemberStore = (*mongodb.MemberRepository)(nil)
var _ http.StaffStore = (*mongodb.StaffRepository)(nil)
var _ audit.Repository = (*mongodb.AuditRepository)(nil)
var _ http.Pinger = (*mongodb.Client)(nil)
var _ mongodb.IndexBuilder = (*mongodb.Client)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.Auditor = (*audit.Service)(nil)
var _ http.AuditEventReader = (*audit.Service)(nil)
var _ http.MutationObserver = (*metrics.Metrics)(nil)
var _ scheduler.AuditEventCleaner = (*audit.Service)(nil)
