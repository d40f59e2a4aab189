// Package members provides SQLite operations for library members.
//
// Email carries a unique index; inserts and updates that collide with an
// existing member return an error wrapping entities.ErrDuplicateKey.
package members

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/digital-library/internal/database"
	"github.com/mrlokans/digital-library/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateMember(ctx context.Context, member *entities.Member) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(member).Error)
}

func (r *Repository) ListMembers(ctx context.Context) ([]entities.Member, error) {
	members := []entities.Member{}
	err := r.db.WithContext(ctx).Order("rowid ASC").Find(&members).Error
	return members, database.TranslateError(err)
}

func (r *Repository) GetMemberByID(ctx context.Context, id string) (*entities.Member, error) {
	var member entities.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &member, nil
}

// UpdateMember applies the non-nil fields of update and returns the stored result.
func (r *Repository) UpdateMember(ctx context.Context, id string, update entities.MemberUpdate) (*entities.Member, error) {
	member, err := r.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return member, nil
	}

	cols := make(map[string]any)
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.MembershipType != nil {
		cols["membership_type"] = *update.MembershipType
	}
	if update.Email != nil {
		cols["email"] = *update.Email
	}
	if update.JoinDate != nil {
		cols["join_date"] = *update.JoinDate
	}

	if err := r.db.WithContext(ctx).Model(member).Updates(cols).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return r.GetMemberByID(ctx, id)
}

func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Member{})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
