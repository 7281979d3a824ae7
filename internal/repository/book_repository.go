package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// BookRepository manages the library catalogue.
type BookRepository struct {
	db *sqlx.DB
}

// NewBookRepository constructs a BookRepository.
func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List returns every book.
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	const query = `SELECT id, title, author, isbn, total_copies, available_copies FROM books ORDER BY id`
	books := []models.Book{}
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// FindByID fetches a book by ID.
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	const query = `SELECT id, title, author, isbn, total_copies, available_copies FROM books WHERE id = $1`
	var book models.Book
	if err := r.db.GetContext(ctx, &book, query, id); err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book. Every copy starts available.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	book.AvailableCopies = book.TotalCopies
	const query = `INSERT INTO books (title, author, isbn, total_copies, available_copies) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, book.Title, book.Author, book.ISBN, book.TotalCopies, book.AvailableCopies).Scan(&book.ID); err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}
