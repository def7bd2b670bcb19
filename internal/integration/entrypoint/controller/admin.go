// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/backend/internal/application/usecase/book"
	"github.com/ledgerbook/backend/internal/application/usecase/team"
	"github.com/ledgerbook/backend/internal/application/usecase/user"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// AdminController handles superadmin-only endpoints: global listings and
// user account administration.
type AdminController struct {
	listAllTeamsUseCase  *team.ListAllTeamsUseCase
	listAllBooksUseCase  *book.ListAllBooksUseCase
	listUsersUseCase     *user.ListUsersUseCase
	setUserStatusUseCase *user.SetUserStatusUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(
	listAllTeamsUseCase *team.ListAllTeamsUseCase,
	listAllBooksUseCase *book.ListAllBooksUseCase,
	listUsersUseCase *user.ListUsersUseCase,
	setUserStatusUseCase *user.SetUserStatusUseCase,
) *AdminController {
	return &AdminController{
		listAllTeamsUseCase:  listAllTeamsUseCase,
		listAllBooksUseCase:  listAllBooksUseCase,
		listUsersUseCase:     listUsersUseCase,
		setUserStatusUseCase: setUserStatusUseCase,
	}
}

// ListTeams handles GET /admin/teams requests. The listing includes
// soft-deleted teams.
func (c *AdminController) ListTeams(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listAllTeamsUseCase.Execute(ctx.Request.Context(), team.ListAllTeamsInput{Actor: actor})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdminTeamListResponse(output.Teams))
}

// ListBooks handles GET /admin/books requests. The listing includes
// soft-deleted books.
func (c *AdminController) ListBooks(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listAllBooksUseCase.Execute(ctx.Request.Context(), book.ListAllBooksInput{Actor: actor})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookListResponse(output.Books))
}

// ListUsers handles GET /admin/users requests.
func (c *AdminController) ListUsers(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUsersUseCase.Execute(ctx.Request.Context(), user.ListUsersInput{Actor: actor})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}

// SetUserStatus handles PATCH /admin/users/:id/status requests.
func (c *AdminController) SetUserStatus(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	userID, ok := parseIDParam(ctx, "id", "Invalid user ID format")
	if !ok {
		return
	}

	var req dto.SetUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.setUserStatusUseCase.Execute(ctx.Request.Context(), user.SetUserStatusInput{
		UserID: userID,
		Active: *req.Active,
		Actor:  actor,
	})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// handleAdminError maps admin errors to HTTP responses.
func (c *AdminController) handleAdminError(ctx *gin.Context, err error) {
	var authzErr *domainerror.AuthzError
	if errors.As(err, &authzErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authzErr.Reason,
		})
		return
	}

	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		statusCode := c.getStatusCodeForUserError(userErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: userErr.Message,
			Code:  string(userErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForUserError maps user error codes to HTTP status codes.
func (c *AdminController) getStatusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeAdminUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUserAlreadyEnabled,
		domainerror.ErrCodeUserAlreadyDisabled:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
