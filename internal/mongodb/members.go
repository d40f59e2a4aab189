package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/digital-library/internal/entities"
)

// MemberRepository relies on the unique email index created by
// Client.EnsureIndexes to reject duplicate members. With an IndexGate,
// writes touching email fail until that index exists.
type MemberRepository struct {
	coll    *mongo.Collection
	indexes *IndexGate
}

func NewMemberRepository(coll *mongo.Collection, opts ...RepositoryOption) *MemberRepository {
	o := applyOptions(opts)
	return &MemberRepository{coll: coll, indexes: o.indexes}
}

func (r *MemberRepository) CreateMember(ctx context.Context, member *entities.Member) error {
	if err := r.indexes.Ensure(ctx); err != nil {
		return err
	}
	member.ID = ""
	id, err := insertOne(ctx, r.coll, member)
	if err != nil {
		return err
	}
	member.ID = id
	return nil
}

func (r *MemberRepository) ListMembers(ctx context.Context) ([]entities.Member, error) {
	return findAll[entities.Member](ctx, r.coll)
}

func (r *MemberRepository) GetMemberByID(ctx context.Context, id string) (*entities.Member, error) {
	return findByID[entities.Member](ctx, r.coll, id)
}

func (r *MemberRepository) UpdateMember(ctx context.Context, id string, update entities.MemberUpdate) (*entities.Member, error) {
	if update.Email != nil {
		if err := r.indexes.Ensure(ctx); err != nil {
			return nil, err
		}
	}
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.MembershipType != nil {
		set["membershipType"] = *update.MembershipType
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.JoinDate != nil {
		set["joinDate"] = *update.JoinDate
	}
	return updateByID[entities.Member](ctx, r.coll, id, set)
}

func (r *MemberRepository) DeleteMember(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}
