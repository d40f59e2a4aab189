// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Record Stores
//
//   - BookStore: CRUD access to books (internal/http/stores.go)
//   - MemberStore: CRUD access to members, unique email (internal/http/stores.go)
//   - StaffStore: CRUD access to staff, unique email (internal/http/stores.go)
//   - Pinger: store connectivity for /health (internal/http/stores.go)
//
// Every store is implemented twice: by the SQLite repositories under
// internal/database/ and by the MongoDB repositories in internal/mongodb.
// DATABASE_DRIVER selects which set entrypoint wires into the router.
//
// ## Audit Trail
//
//   - audit.Repository: persistence of audit events (internal/audit/service.go)
//   - Auditor: records mutation attempts from controllers (internal/http/stores.go)
//   - AuditEventReader: lists events for GET /api/audit (internal/http/stores.go)
//   - AuditEventCleaner: retention sweep (internal/scheduler/audit_cleanup.go)
//
// ## Instrumentation
//
//   - MutationObserver: counts mutations per entity (internal/http/stores.go)
//
// # Store Errors
//
// Stores translate driver errors into two sentinels from internal/entities:
//
//	entities.ErrNotFound     // unknown or malformed identifier
//	entities.ErrDuplicateKey // unique index violation, wraps the driver message
//
// Controllers answer ErrNotFound with 404 and forward everything else with
// their error status.
//
// # Adding a New Record Kind
//
//  1. Add the entity and its partial update type in internal/entities/
//
//  2. Create sub-package: internal/database/<kind>/ with a Repository
//     taking *gorm.DB, and add the entity to Database.Migrate
//
//  3. Add a repository in internal/mongodb/ on top of the generic helpers
//     (findAll, findByID, updateByID, deleteByID)
//
//  4. Define the store interface and controller in internal/http/ and
//     register the routes in router.go
//
//  5. Add compile-time checks for both backends:
//
//     var _ http.LoanStore = (*loans.Repository)(nil)
//     var _ http.LoanStore = (*mongodb.LoanRepository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
