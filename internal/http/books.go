package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/entities"
)

const (
	// Book handlers report every failure other than a missing book as 500.
	bookErrorStatus = http.StatusInternalServerError
	bookNotFound    = "Book not found"
)

type BooksController struct {
	store  BookStore
	deps   ControllerDeps
	logger *zap.Logger
}

func NewBooksController(store BookStore, deps ControllerDeps) *BooksController {
	useJSONFieldNames()
	return &BooksController{
		store:  store,
		deps:   deps,
		logger: deps.logger(),
	}
}

// CreateBook adds a book to the catalogue
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if reqErr := decodeBody(c, bookRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, bookErrorStatus)
		return
	}

	book := req.toEntity()

	ctx, cancel := storeContext(c, bc.deps.QueryTimeout)
	defer cancel()

	err := bc.store.CreateBook(ctx, &book)
	bc.deps.recordMutation(requestMeta(c), entities.AuditEventCreate, entities.BookEntity, book.ID, err)
	if err != nil {
		respondStoreError(c, bc.logger, err, bookErrorStatus, bookNotFound)
		return
	}

	respondCreated(c, book)
}

// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	ctx, cancel := storeContext(c, bc.deps.QueryTimeout)
	defer cancel()

	books, err := bc.store.ListBooks(ctx)
	if err != nil {
		respondStoreError(c, bc.logger, err, bookErrorStatus, bookNotFound)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}

	respondOK(c, books)
}

// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	ctx, cancel := storeContext(c, bc.deps.QueryTimeout)
	defer cancel()

	book, err := bc.store.GetBookByID(ctx, c.Param("id"))
	if err != nil {
		respondStoreError(c, bc.logger, err, bookErrorStatus, bookNotFound)
		return
	}

	respondOK(c, book)
}

// UpdateBook applies the fields present in the body and returns the updated book
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	var req updateBookRequest
	if reqErr := decodeBody(c, bookRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, bookErrorStatus)
		return
	}

	id := c.Param("id")

	ctx, cancel := storeContext(c, bc.deps.QueryTimeout)
	defer cancel()

	book, err := bc.store.UpdateBook(ctx, id, req.toUpdate())
	bc.deps.recordMutation(requestMeta(c), entities.AuditEventUpdate, entities.BookEntity, id, err)
	if err != nil {
		respondStoreError(c, bc.logger, err, bookErrorStatus, bookNotFound)
		return
	}

	respondOK(c, book)
}

// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := storeContext(c, bc.deps.QueryTimeout)
	defer cancel()

	err := bc.store.DeleteBook(ctx, id)
	bc.deps.recordMutation(requestMeta(c), entities.AuditEventDelete, entities.BookEntity, id, err)
	if err != nil {
		respondStoreError(c, bc.logger, err, bookErrorStatus, bookNotFound)
		return
	}

	respondMessage(c, "Book deleted successfully")
}
