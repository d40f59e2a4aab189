package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/digital-library/internal/audit"
	"github.com/mrlokans/digital-library/internal/entities"
)

type mockBookStore struct {
	books     map[string]entities.Book
	created   *entities.Book
	update    *entities.BookUpdate
	deletedID string
	err       error
}

func newMockBookStore() *mockBookStore {
	return &mockBookStore{books: map[string]entities.Book{}}
}

func (m *mockBookStore) CreateBook(_ context.Context, book *entities.Book) error {
	if m.err != nil {
		return m.err
	}
	book.ID = "book-1"
	m.created = book
	m.books[book.ID] = *book
	return nil
}

func (m *mockBookStore) ListBooks(context.Context) ([]entities.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []entities.Book
	for _, b := range m.books {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookStore) GetBookByID(_ context.Context, id string) (*entities.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &b, nil
}

func (m *mockBookStore) UpdateBook(_ context.Context, id string, update entities.BookUpdate) (*entities.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.update = &update
	b, ok := m.books[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.IsFiction != nil {
		b.IsFiction = *update.IsFiction
	}
	m.books[id] = b
	return &b, nil
}

func (m *mockBookStore) DeleteBook(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.books[id]; !ok {
		return entities.ErrNotFound
	}
	m.deletedID = id
	delete(m.books, id)
	return nil
}

type mockMemberStore struct {
	members map[string]entities.Member
	update  *entities.MemberUpdate
	err     error
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{members: map[string]entities.Member{}}
}

func (m *mockMemberStore) CreateMember(_ context.Context, member *entities.Member) error {
	if m.err != nil {
		return m.err
	}
	member.ID = "member-1"
	m.members[member.ID] = *member
	return nil
}

func (m *mockMemberStore) ListMembers(context.Context) ([]entities.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []entities.Member{}
	for _, v := range m.members {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockMemberStore) GetMemberByID(_ context.Context, id string) (*entities.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.members[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &v, nil
}

func (m *mockMemberStore) UpdateMember(_ context.Context, id string, update entities.MemberUpdate) (*entities.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.update = &update
	v, ok := m.members[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	if update.JoinDate != nil {
		v.JoinDate = *update.JoinDate
	}
	if update.MembershipType != nil {
		v.MembershipType = *update.MembershipType
	}
	m.members[id] = v
	return &v, nil
}

func (m *mockMemberStore) DeleteMember(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.members[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.members, id)
	return nil
}

type mockStaffStore struct {
	staff map[string]entities.Staff
	err   error
}

func newMockStaffStore() *mockStaffStore {
	return &mockStaffStore{staff: map[string]entities.Staff{}}
}

func (m *mockStaffStore) CreateStaff(_ context.Context, s *entities.Staff) error {
	if m.err != nil {
		return m.err
	}
	s.ID = "staff-1"
	m.staff[s.ID] = *s
	return nil
}

func (m *mockStaffStore) ListStaff(context.Context) ([]entities.Staff, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []entities.Staff{}
	for _, v := range m.staff {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockStaffStore) GetStaffByID(_ context.Context, id string) (*entities.Staff, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.staff[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &v, nil
}

func (m *mockStaffStore) UpdateStaff(_ context.Context, id string, update entities.StaffUpdate) (*entities.Staff, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.staff[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	if update.Position != nil {
		v.Position = *update.Position
	}
	m.staff[id] = v
	return &v, nil
}

func (m *mockStaffStore) DeleteStaff(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.staff[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.staff, id)
	return nil
}

type auditCall struct {
	eventType  entities.AuditEventType
	entityType string
	entityID   string
	err        error
}

type mockAuditor struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *mockAuditor) LogMutation(_ audit.RequestMeta, eventType entities.AuditEventType, entityType, entityID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{eventType: eventType, entityType: entityType, entityID: entityID, err: err})
}

// performRequest sends body (marshalled unless it is already a string) to the router.
func performRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performRawRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func init() {
	gin.SetMode(gin.TestMode)
}
