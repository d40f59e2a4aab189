// Package staff provides SQLite operations for library staff.
package staff

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/digital-library/internal/database"
	"github.com/mrlokans/digital-library/internal/entities"
)

// Repository handles all staff database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new staff repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateStaff inserts the staff member and fills in its generated ID.
func (r *Repository) CreateStaff(ctx context.Context, staff *entities.Staff) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(staff).Error)
}

// ListStaff returns every staff member in insertion order.
func (r *Repository) ListStaff(ctx context.Context) ([]entities.Staff, error) {
	staff := []entities.Staff{}
	err := r.db.WithContext(ctx).Order("rowid ASC").Find(&staff).Error
	return staff, database.TranslateError(err)
}

// GetStaffByID retrieves a staff member by ID.
func (r *Repository) GetStaffByID(ctx context.Context, id string) (*entities.Staff, error) {
	var staff entities.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &staff, nil
}

// UpdateStaff applies the non-nil fields of update and returns the stored result.
func (r *Repository) UpdateStaff(ctx context.Context, id string, update entities.StaffUpdate) (*entities.Staff, error) {
	staff, err := r.GetStaffByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return staff, nil
	}

	cols := make(map[string]any)
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.Position != nil {
		cols["position"] = *update.Position
	}
	if update.Email != nil {
		cols["email"] = *update.Email
	}
	if update.HireDate != nil {
		cols["hire_date"] = *update.HireDate
	}

	if err := r.db.WithContext(ctx).Model(staff).Updates(cols).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return r.GetStaffByID(ctx, id)
}

// DeleteStaff removes the staff member. Returns entities.ErrNotFound when nothing was deleted.
func (r *Repository) DeleteStaff(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Staff{})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
