// Package books provides SQLite operations for the book catalogue.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, id)
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/digital-library/internal/database"
	"github.com/mrlokans/digital-library/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts the book and fills in its generated ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(book).Error)
}

// ListBooks returns every book in insertion order.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).Order("rowid ASC").Find(&books).Error
	return books, database.TranslateError(err)
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// UpdateBook applies the non-nil fields of update and returns the stored result.
func (r *Repository) UpdateBook(ctx context.Context, id string, update entities.BookUpdate) (*entities.Book, error) {
	book, err := r.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return book, nil
	}

	if err := r.db.WithContext(ctx).Model(book).Updates(bookColumns(update)).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return r.GetBookByID(ctx, id)
}

// DeleteBook removes the book. Returns entities.ErrNotFound when nothing was deleted.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// bookColumns uses a map so that false and "" are written too.
func bookColumns(u entities.BookUpdate) map[string]any {
	cols := make(map[string]any)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Author != nil {
		cols["author"] = *u.Author
	}
	if u.Genre != nil {
		cols["genre"] = *u.Genre
	}
	if u.IsFiction != nil {
		cols["is_fiction"] = *u.IsFiction
	}
	return cols
}
