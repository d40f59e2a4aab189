package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const StaffEntity = "staff"

// Staff is a library employee. Email is unique across all staff records.
type Staff struct {
	ID       string    `gorm:"primaryKey;size:36" json:"_id" bson:"_id,omitempty"`
	Name     string    `gorm:"not null;size:256" json:"name" bson:"name"`
	Position string    `gorm:"not null;size:128" json:"position" bson:"position"`
	Email    string    `gorm:"not null;uniqueIndex;size:255" json:"email" bson:"email"`
	HireDate time.Time `gorm:"not null" json:"hireDate" bson:"hireDate"`
}

// TableName keeps "staff" singular; the default naming strategy would pluralise it.
func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type StaffUpdate struct {
	Name     *string
	Position *string
	Email    *string
	HireDate *time.Time
}

func (u StaffUpdate) IsEmpty() bool {
	return u.Name == nil && u.Position == nil && u.Email == nil && u.HireDate == nil
}
