package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/entities"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

var auditEntityTypes = map[string]bool{
	entities.BookEntity:   true,
	entities.MemberEntity: true,
	entities.StaffEntity:  true,
}

type AuditController struct {
	reader AuditEventReader
	deps   ControllerDeps
	logger *zap.Logger
}

func NewAuditController(reader AuditEventReader, deps ControllerDeps) *AuditController {
	return &AuditController{reader: reader, deps: deps, logger: deps.logger()}
}

// ListEvents returns recorded mutations, most recent first
// GET /api/audit?entity=book&page=1&limit=50
func (ac *AuditController) ListEvents(c *gin.Context) {
	entity := c.Query("entity")
	if entity != "" && !auditEntityTypes[entity] {
		respondBadRequest(c, "invalid entity, expected one of book, member, staff")
		return
	}

	page, ok := parsePositiveQuery(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := parsePositiveQuery(c, "limit", defaultAuditLimit)
	if !ok {
		return
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	ctx, cancel := storeContext(c, ac.deps.QueryTimeout)
	defer cancel()

	events, total, err := ac.reader.GetEvents(ctx, entity, limit, (page-1)*limit)
	if err != nil {
		respondStoreError(c, ac.logger, err, http.StatusInternalServerError, "Audit event not found")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondOK(c, PaginatedResponse{
		Data:       events,
		Total:      total,
		Page:       page,
		Limit:      limit,
		HasMore:    int64(page*limit) < total,
		TotalPages: totalPages,
	})
}

// parsePositiveQuery reads an optional positive integer query parameter.
// Responds with a 400 error and returns false when the value is invalid.
func parsePositiveQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
