package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// SetUserStatusInput represents the input for enabling or disabling a user.
type SetUserStatusInput struct {
	UserID uuid.UUID
	Active bool
	Actor  authz.Actor
}

// SetUserStatusOutput represents the output of a status change.
type SetUserStatusOutput struct {
	User *entity.User
}

// SetUserStatusUseCase handles enabling and disabling user accounts.
// Reserved to superadmins; disabled users cannot authenticate.
type SetUserStatusUseCase struct {
	userRepo adapter.UserRepository
}

// NewSetUserStatusUseCase creates a new SetUserStatusUseCase instance.
func NewSetUserStatusUseCase(userRepo adapter.UserRepository) *SetUserStatusUseCase {
	return &SetUserStatusUseCase{userRepo: userRepo}
}

// Execute flips the user's active flag. Setting the flag to its current
// value is an invalid state transition, not a no-op.
func (uc *SetUserStatusUseCase) Execute(ctx context.Context, input SetUserStatusInput) (*SetUserStatusOutput, error) {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeAdminUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	if user.Active == input.Active {
		if input.Active {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserAlreadyEnabled,
				"user is already enabled",
				domainerror.ErrUserAlreadyEnabled,
			)
		}
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserAlreadyDisabled,
			"user is already disabled",
			domainerror.ErrUserAlreadyDisabled,
		)
	}

	user.Active = input.Active
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &SetUserStatusOutput{User: user}, nil
}
