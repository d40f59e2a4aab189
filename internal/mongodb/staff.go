package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/digital-library/internal/entities"
)

type StaffRepository struct {
	coll    *mongo.Collection
	indexes *IndexGate
}

func NewStaffRepository(coll *mongo.Collection, opts ...RepositoryOption) *StaffRepository {
	o := applyOptions(opts)
	return &StaffRepository{coll: coll, indexes: o.indexes}
}

func (r *StaffRepository) CreateStaff(ctx context.Context, staff *entities.Staff) error {
	if err := r.indexes.Ensure(ctx); err != nil {
		return err
	}
	staff.ID = ""
	id, err := insertOne(ctx, r.coll, staff)
	if err != nil {
		return err
	}
	staff.ID = id
	return nil
}

func (r *StaffRepository) ListStaff(ctx context.Context) ([]entities.Staff, error) {
	return findAll[entities.Staff](ctx, r.coll)
}

func (r *StaffRepository) GetStaffByID(ctx context.Context, id string) (*entities.Staff, error) {
	return findByID[entities.Staff](ctx, r.coll, id)
}

func (r *StaffRepository) UpdateStaff(ctx context.Context, id string, update entities.StaffUpdate) (*entities.Staff, error) {
	if update.Email != nil {
		if err := r.indexes.Ensure(ctx); err != nil {
			return nil, err
		}
	}
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.HireDate != nil {
		set["hireDate"] = *update.HireDate
	}
	return updateByID[entities.Staff](ctx, r.coll, id, set)
}

func (r *StaffRepository) DeleteStaff(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}
