package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MemberEntity = "member"

type Member struct {
	ID             string    `gorm:"primaryKey;size:36" json:"_id" bson:"_id,omitempty"`
	Name           string    `gorm:"not null;size:256" json:"name" bson:"name"`
	MembershipType string    `gorm:"not null;size:64" json:"membershipType" bson:"membershipType"`
	Email          string    `gorm:"not null;uniqueIndex;size:255" json:"email" bson:"email"`
	JoinDate       time.Time `gorm:"not null" json:"joinDate" bson:"joinDate"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MemberUpdate struct {
	Name           *string
	MembershipType *string
	Email          *string
	JoinDate       *time.Time
}

func (u MemberUpdate) IsEmpty() bool {
	return u.Name == nil && u.MembershipType == nil && u.Email == nil && u.JoinDate == nil
}
