package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/digital-library/internal/entities"
)

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(coll *mongo.Collection) *BookRepository {
	return &BookRepository{coll: coll}
}

func (r *BookRepository) CreateBook(ctx context.Context, book *entities.Book) error {
	book.ID = ""
	id, err := insertOne(ctx, r.coll, book)
	if err != nil {
		return err
	}
	book.ID = id
	return nil
}

func (r *BookRepository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return findAll[entities.Book](ctx, r.coll)
}

func (r *BookRepository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	return findByID[entities.Book](ctx, r.coll, id)
}

func (r *BookRepository) UpdateBook(ctx context.Context, id string, update entities.BookUpdate) (*entities.Book, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.Genre != nil {
		set["genre"] = *update.Genre
	}
	if update.IsFiction != nil {
		set["isFiction"] = *update.IsFiction
	}
	return updateByID[entities.Book](ctx, r.coll, id, set)
}

func (r *BookRepository) DeleteBook(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}
