package members

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/digital-library/internal/database"
	"github.com/mrlokans/digital-library/internal/entities"
)

func setupTestDB(t *testing.T, name string) (*Repository, func()) {
	dbPath := filepath.Join(t.TempDir(), "members_"+name+".db")
	db, err := database.NewDatabase(dbPath, "silent")
	require.NoError(t, err)

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func newMember(email string) *entities.Member {
	return &entities.Member{
		Name:           "Ada Lovelace",
		MembershipType: "premium",
		Email:          email,
		JoinDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, cleanup := setupTestDB(t, "create_get")
	defer cleanup()
	ctx := context.Background()

	member := newMember("ada@example.com")
	require.NoError(t, repo.CreateMember(ctx, member))
	require.NotEmpty(t, member.ID)

	got, err := repo.GetMemberByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.Email, got.Email)
	assert.True(t, member.JoinDate.Equal(got.JoinDate))
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupTestDB(t, "duplicate")
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.CreateMember(ctx, newMember("ada@example.com")))

	err := repo.CreateMember(ctx, newMember("ada@example.com"))
	assert.ErrorIs(t, err, entities.ErrDuplicateKey)

	other := newMember("grace@example.com")
	require.NoError(t, repo.CreateMember(ctx, other))

	email := "ada@example.com"
	_, err = repo.UpdateMember(ctx, other.ID, entities.MemberUpdate{Email: &email})
	assert.ErrorIs(t, err, entities.ErrDuplicateKey)
}

func TestRepository_UpdateMember(t *testing.T) {
	repo, cleanup := setupTestDB(t, "update")
	defer cleanup()
	ctx := context.Background()

	member := newMember("ada@example.com")
	require.NoError(t, repo.CreateMember(ctx, member))

	membership := "basic"
	joined := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateMember(ctx, member.ID, entities.MemberUpdate{MembershipType: &membership, JoinDate: &joined})
	require.NoError(t, err)
	assert.Equal(t, "basic", updated.MembershipType)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.True(t, joined.Equal(updated.JoinDate))

	_, err = repo.UpdateMember(ctx, "missing", entities.MemberUpdate{MembershipType: &membership})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListAndDelete(t *testing.T) {
	repo, cleanup := setupTestDB(t, "list_delete")
	defer cleanup()
	ctx := context.Background()

	first := newMember("a@example.com")
	second := newMember("b@example.com")
	require.NoError(t, repo.CreateMember(ctx, first))
	require.NoError(t, repo.CreateMember(ctx, second))

	members, err := repo.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, repo.DeleteMember(ctx, first.ID))
	assert.ErrorIs(t, repo.DeleteMember(ctx, first.ID), entities.ErrNotFound)

	members, err = repo.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, second.ID, members[0].ID)
}
