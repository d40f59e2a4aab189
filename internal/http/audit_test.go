package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/digital-library/internal/entities"
)

type mockAuditReader struct {
	entityType string
	limit      int
	offset     int
	events     []entities.AuditEvent
	total      int64
	err        error
}

func (m *mockAuditReader) GetEvents(_ context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	m.entityType = entityType
	m.limit = limit
	m.offset = offset
	return m.events, m.total, m.err
}

func setupAuditRouter(reader AuditEventReader) *gin.Engine {
	controller := NewAuditController(reader, ControllerDeps{})
	router := gin.New()
	router.GET("/api/audit", controller.ListEvents)
	return router
}

func TestAuditController_ListEvents(t *testing.T) {
	t.Run("paginates", func(t *testing.T) {
		reader := &mockAuditReader{
			events: []entities.AuditEvent{{ID: "e1", Action: "book_create"}},
			total:  45,
		}
		router := setupAuditRouter(reader)

		w := performRequest(t, router, http.MethodGet, "/api/audit?entity=book&page=2&limit=20", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "book", reader.entityType)
		assert.Equal(t, 20, reader.limit)
		assert.Equal(t, 20, reader.offset)

		var resp struct {
			Data       []entities.AuditEvent `json:"data"`
			Total      int64                 `json:"total"`
			Page       int                   `json:"page"`
			HasMore    bool                  `json:"hasMore"`
			TotalPages int                   `json:"totalPages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(45), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.True(t, resp.HasMore)
		assert.Equal(t, 3, resp.TotalPages)
	})

	t.Run("defaults and cap", func(t *testing.T) {
		reader := &mockAuditReader{}
		router := setupAuditRouter(reader)

		w := performRequest(t, router, http.MethodGet, "/api/audit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", reader.entityType)
		assert.Equal(t, defaultAuditLimit, reader.limit)
		assert.Equal(t, 0, reader.offset)
		assert.Contains(t, w.Body.String(), `"data":[]`)

		w = performRequest(t, router, http.MethodGet, "/api/audit?limit=5000", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, maxAuditLimit, reader.limit)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		router := setupAuditRouter(&mockAuditReader{})

		for _, query := range []string{"?entity=loan", "?page=0", "?limit=abc"} {
			w := performRequest(t, router, http.MethodGet, "/api/audit"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})

	t.Run("store error", func(t *testing.T) {
		router := setupAuditRouter(&mockAuditReader{err: errors.New("boom")})

		w := performRequest(t, router, http.MethodGet, "/api/audit", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
