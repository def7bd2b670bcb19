// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// resolveBookForRead returns the book when it is reachable and the actor may
// read it. Unreachable books and outsider access both read as not-found so
// hidden data never leaks through error shape.
func resolveBookForRead(ctx context.Context, bookRepo adapter.BookRepository, gate *authz.Gate, bookID uuid.UUID, actor authz.Actor) (*entity.Book, error) {
	book, err := bookRepo.FindReachableBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, bookNotFound()
	}

	decision, err := gate.CanRead(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, bookNotFound()
	}

	return book, nil
}

// resolveBookForWrite is resolveBookForRead with the write predicate. A
// member who can see the book but not write to it gets the denial rather
// than not-found.
func resolveBookForWrite(ctx context.Context, bookRepo adapter.BookRepository, gate *authz.Gate, bookID uuid.UUID, actor authz.Actor) (*entity.Book, error) {
	book, err := bookRepo.FindReachableBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, bookNotFound()
	}

	readable, err := gate.CanRead(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !readable.Allowed {
		return nil, bookNotFound()
	}

	writable, err := gate.CanWrite(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !writable.Allowed {
		return nil, authz.Denied(writable)
	}

	return book, nil
}

func bookNotFound() error {
	return domainerror.NewBookError(
		domainerror.ErrCodeBookNotFound,
		"book not found",
		domainerror.ErrBookNotFound,
	)
}

func accountNotFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}
