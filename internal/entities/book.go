package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const BookEntity = "book"

// Book is a catalogue entry. The _id is assigned by the store on creation.
type Book struct {
	ID        string `gorm:"primaryKey;size:36" json:"_id" bson:"_id,omitempty"`
	Title     string `gorm:"not null;size:512" json:"title" bson:"title"`
	Author    string `gorm:"not null;size:256" json:"author" bson:"author"`
	Genre     string `gorm:"not null;size:128" json:"genre" bson:"genre"`
	IsFiction bool   `gorm:"not null" json:"isFiction" bson:"isFiction"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BookUpdate carries a partial update. Nil fields are left untouched.
type BookUpdate struct {
	Title     *string
	Author    *string
	Genre     *string
	IsFiction *bool
}

func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Genre == nil && u.IsFiction == nil
}
