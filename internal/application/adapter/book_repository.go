// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// BookRepository defines the interface for book persistence operations.
//
// FindReachableBookByID enforces the two-level liveness rule: a book is only
// returned when neither the book nor its owning team is soft-deleted. The
// Unscoped variant bypasses both checks for superadmin and lifecycle paths.
type BookRepository interface {
	// CreateBook creates a new book in the database.
	CreateBook(ctx context.Context, book *entity.Book) error

	// FindReachableBookByID retrieves a book whose book and team are both active.
	FindReachableBookByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindBookByIDUnscoped retrieves a book by ID regardless of lifecycle state.
	FindBookByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindBooksByTeamID retrieves all active books of a team.
	FindBooksByTeamID(ctx context.Context, teamID uuid.UUID) ([]*entity.Book, error)

	// ListAllBooks retrieves every book, soft-deleted included.
	ListAllBooks(ctx context.Context) ([]*entity.Book, error)

	// UpdateBook updates an existing book in the database.
	UpdateBook(ctx context.Context, book *entity.Book) error

	// SoftDeleteBook marks an active book as deleted at the given instant.
	// Returns false when the book was missing or already soft-deleted.
	SoftDeleteBook(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// RestoreBook clears the deletion timestamp of a soft-deleted book.
	// Returns false when the book was missing or not soft-deleted.
	RestoreBook(ctx context.Context, id uuid.UUID) (bool, error)

	// PurgeBook permanently deletes a book and all of its descendants
	// (transactions, accounts, categories) in a single transaction,
	// children before parents.
	PurgeBook(ctx context.Context, id uuid.UUID) error
}
