package http

import (
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Record stores
	Books   BookStore
	Members MemberStore
	Staff   StaffStore

	// Audit trail. Both are nil when auditing is disabled.
	AuditEvents AuditEventReader
	Auditor     Auditor

	// Store connectivity for /health, reported under the driver name
	Database       Pinger
	DatabaseDriver string

	// Nil disables instrumentation and the /metrics endpoint.
	Metrics *metrics.Metrics

	Logger         *zap.Logger
	AllowedOrigins []string
	QueryTimeout   time.Duration

	// Application info
	Version string
}
