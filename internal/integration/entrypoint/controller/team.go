// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/usecase/team"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// TeamController handles team and membership endpoints.
type TeamController struct {
	createUseCase       *team.CreateTeamUseCase
	listUseCase         *team.ListTeamsUseCase
	getUseCase          *team.GetTeamUseCase
	updateUseCase       *team.UpdateTeamUseCase
	softDeleteUseCase   *team.SoftDeleteTeamUseCase
	restoreUseCase      *team.RestoreTeamUseCase
	purgeUseCase        *team.PurgeTeamUseCase
	addMemberUseCase    *team.AddMemberUseCase
	listMembersUseCase  *team.ListMembersUseCase
	changeRoleUseCase   *team.ChangeMemberRoleUseCase
	removeMemberUseCase *team.RemoveMemberUseCase
	leaveUseCase        *team.LeaveTeamUseCase
	inviteUseCase       *team.InviteMemberUseCase
	acceptInviteUseCase *team.AcceptInviteUseCase
}

// NewTeamController creates a new team controller instance.
func NewTeamController(
	createUseCase *team.CreateTeamUseCase,
	listUseCase *team.ListTeamsUseCase,
	getUseCase *team.GetTeamUseCase,
	updateUseCase *team.UpdateTeamUseCase,
	softDeleteUseCase *team.SoftDeleteTeamUseCase,
	restoreUseCase *team.RestoreTeamUseCase,
	purgeUseCase *team.PurgeTeamUseCase,
	addMemberUseCase *team.AddMemberUseCase,
	listMembersUseCase *team.ListMembersUseCase,
	changeRoleUseCase *team.ChangeMemberRoleUseCase,
	removeMemberUseCase *team.RemoveMemberUseCase,
	leaveUseCase *team.LeaveTeamUseCase,
	inviteUseCase *team.InviteMemberUseCase,
	acceptInviteUseCase *team.AcceptInviteUseCase,
) *TeamController {
	return &TeamController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		updateUseCase:       updateUseCase,
		softDeleteUseCase:   softDeleteUseCase,
		restoreUseCase:      restoreUseCase,
		purgeUseCase:        purgeUseCase,
		addMemberUseCase:    addMemberUseCase,
		listMembersUseCase:  listMembersUseCase,
		changeRoleUseCase:   changeRoleUseCase,
		removeMemberUseCase: removeMemberUseCase,
		leaveUseCase:        leaveUseCase,
		inviteUseCase:       inviteUseCase,
		acceptInviteUseCase: acceptInviteUseCase,
	}
}

// Create handles POST /teams requests.
func (c *TeamController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	input := team.CreateTeamInput{
		Name:   req.Name,
		UserID: userID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTeamResponse(output.Team, output.Members))
}

// List handles GET /teams requests.
func (c *TeamController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), team.ListTeamsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve teams",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamListResponse(output.Teams))
}

// Get handles GET /teams/:id requests.
func (c *TeamController) Get(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), team.GetTeamInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamResponse(output.Team, output.Members))
}

// Update handles PUT /teams/:id requests.
func (c *TeamController) Update(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), team.UpdateTeamInput{
		TeamID: teamID,
		Name:   req.Name,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamResponse(output.Team, nil))
}

// SoftDelete handles DELETE /teams/:id requests.
func (c *TeamController) SoftDelete(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	err := c.softDeleteUseCase.Execute(ctx.Request.Context(), team.SoftDeleteTeamInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Restore handles POST /teams/:id/restore requests.
func (c *TeamController) Restore(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), team.RestoreTeamInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamResponse(output.Team, nil))
}

// Purge handles DELETE /teams/:id/purge requests.
func (c *TeamController) Purge(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	err := c.purgeUseCase.Execute(ctx.Request.Context(), team.PurgeTeamInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddMember handles POST /teams/:id/members requests.
func (c *TeamController) AddMember(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user ID format",
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	output, err := c.addMemberUseCase.Execute(ctx.Request.Context(), team.AddMemberInput{
		TeamID: teamID,
		UserID: userID,
		Role:   entity.Role(req.Role),
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTeamMemberResponse(output.Member))
}

// ListMembers handles GET /teams/:id/members requests.
func (c *TeamController) ListMembers(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	output, err := c.listMembersUseCase.Execute(ctx.Request.Context(), team.ListMembersInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamMemberListResponse(output.Members))
}

// ChangeMemberRole handles PATCH /teams/:id/members/:memberId requests.
func (c *TeamController) ChangeMemberRole(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(ctx, "memberId", "Invalid member ID format")
	if !ok {
		return
	}

	var req dto.ChangeMemberRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	output, err := c.changeRoleUseCase.Execute(ctx.Request.Context(), team.ChangeMemberRoleInput{
		TeamID:   teamID,
		MemberID: memberID,
		NewRole:  entity.Role(req.Role),
		Actor:    actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTeamMemberResponse(output.Member))
}

// RemoveMember handles DELETE /teams/:id/members/:memberId requests.
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(ctx, "memberId", "Invalid member ID format")
	if !ok {
		return
	}

	err := c.removeMemberUseCase.Execute(ctx.Request.Context(), team.RemoveMemberInput{
		TeamID:   teamID,
		MemberID: memberID,
		Actor:    actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Leave handles POST /teams/:id/leave requests.
func (c *TeamController) Leave(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	err := c.leaveUseCase.Execute(ctx.Request.Context(), team.LeaveTeamInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Invite handles POST /teams/:id/invites requests.
func (c *TeamController) Invite(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	output, err := c.inviteUseCase.Execute(ctx.Request.Context(), team.InviteMemberInput{
		TeamID: teamID,
		Email:  req.Email,
		Role:   entity.Role(req.Role),
		Actor:  actor,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTeamInviteResponse(output.Invite))
}

// AcceptInvite handles POST /invites/accept requests.
func (c *TeamController) AcceptInvite(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.AcceptInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTeamFields),
		})
		return
	}

	output, err := c.acceptInviteUseCase.Execute(ctx.Request.Context(), team.AcceptInviteInput{
		Token:  req.Token,
		UserID: userID,
	})
	if err != nil {
		c.handleTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AcceptInviteResponse{
		TeamID:   output.Team.ID.String(),
		TeamName: output.Team.Name,
		Role:     string(output.Member.Role),
	})
}

// handleTeamError maps team errors to HTTP responses. Authorization denials
// surface as 403 with the gate's reason.
func (c *TeamController) handleTeamError(ctx *gin.Context, err error) {
	var authzErr *domainerror.AuthzError
	if errors.As(err, &authzErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authzErr.Reason,
		})
		return
	}

	var teamErr *domainerror.TeamError
	if errors.As(err, &teamErr) {
		statusCode := c.getStatusCodeForTeamError(teamErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: teamErr.Message,
			Code:  string(teamErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTeamError maps team error codes to HTTP status codes.
func (c *TeamController) getStatusCodeForTeamError(code domainerror.TeamErrorCode) int {
	switch code {
	case domainerror.ErrCodeTeamNotFound,
		domainerror.ErrCodeMemberNotFound,
		domainerror.ErrCodeInviteNotFound,
		domainerror.ErrCodeInviteeNotRegistered:
		return http.StatusNotFound
	case domainerror.ErrCodeMemberAlreadyExists,
		domainerror.ErrCodeLastAdmin,
		domainerror.ErrCodeInviteAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeTeamNameRequired,
		domainerror.ErrCodeTeamNameTooLong,
		domainerror.ErrCodeInvalidRole,
		domainerror.ErrCodeMissingTeamFields,
		domainerror.ErrCodeTeamNotDeleted,
		domainerror.ErrCodeTeamNotSoftDeleted,
		domainerror.ErrCodeTeamDeletedMembership,
		domainerror.ErrCodeInviteExpired,
		domainerror.ErrCodeCannotInviteSelf:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
