// Package user contains user administration use cases.
package user

import (
	"context"
	"fmt"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListUsersInput represents the input for the global user listing.
type ListUsersInput struct {
	Actor authz.Actor
}

// ListUsersOutput represents the output of the global user listing.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase lists every user. Reserved to superadmins.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute returns all users ordered by creation time.
func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return nil, err
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersOutput{Users: users}, nil
}
