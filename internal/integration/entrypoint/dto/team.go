// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CreateTeamRequest represents the request body for team creation.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateTeamRequest represents the request body for renaming a team.
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddMemberRequest represents the request body for adding a member directly.
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=viewer collaborator admin"`
}

// ChangeMemberRoleRequest represents the request body for changing a member's role.
type ChangeMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=viewer collaborator admin"`
}

// InviteMemberRequest represents the request body for inviting a member by email.
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=viewer collaborator admin"`
}

// AcceptInviteRequest represents the request body for accepting an invitation.
type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

// TeamResponse represents a single team in API responses.
type TeamResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	CreatedBy string               `json:"created_by"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	Members   []TeamMemberResponse `json:"members,omitempty"`
}

// TeamListResponse represents the response for listing a user's teams.
type TeamListResponse struct {
	Teams []TeamListItemResponse `json:"teams"`
}

// TeamListItemResponse represents a team in list view.
type TeamListItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MemberCount int       `json:"member_count"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminTeamListResponse represents the global team listing for superadmins.
type AdminTeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// TeamMemberResponse represents a team member in API responses.
type TeamMemberResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamMemberListResponse represents the response for listing team members.
type TeamMemberListResponse struct {
	Members []TeamMemberResponse `json:"members"`
}

// TeamInviteResponse represents a team invitation in API responses.
type TeamInviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AcceptInviteResponse represents the response for accepting an invitation.
type AcceptInviteResponse struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Role     string `json:"role"`
}

// ToTeamResponse converts a domain Team entity to a TeamResponse DTO.
func ToTeamResponse(team *entity.Team, members []*entity.TeamMember) TeamResponse {
	response := TeamResponse{
		ID:        team.ID.String(),
		Name:      team.Name,
		CreatedBy: team.CreatedBy.String(),
		DeletedAt: team.Lifecycle.DeletedAt(),
		CreatedAt: team.CreatedAt,
	}

	if len(members) > 0 {
		response.Members = make([]TeamMemberResponse, len(members))
		for i, m := range members {
			response.Members[i] = ToTeamMemberResponse(m)
		}
	}

	return response
}

// ToTeamListResponse converts a list of TeamListItem to TeamListResponse.
func ToTeamListResponse(teams []*entity.TeamListItem) TeamListResponse {
	items := make([]TeamListItemResponse, len(teams))
	for i, t := range teams {
		items[i] = TeamListItemResponse{
			ID:          t.ID.String(),
			Name:        t.Name,
			MemberCount: t.MemberCount,
			Role:        string(t.Role),
			CreatedAt:   t.CreatedAt,
		}
	}
	return TeamListResponse{Teams: items}
}

// ToAdminTeamListResponse converts the global team listing, soft-deleted
// teams included.
func ToAdminTeamListResponse(teams []*entity.Team) AdminTeamListResponse {
	items := make([]TeamResponse, len(teams))
	for i, t := range teams {
		items[i] = ToTeamResponse(t, nil)
	}
	return AdminTeamListResponse{Teams: items}
}

// ToTeamMemberResponse converts a domain TeamMember entity to a DTO.
func ToTeamMemberResponse(member *entity.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:       member.ID.String(),
		UserID:   member.UserID.String(),
		Name:     member.UserName,
		Email:    member.UserEmail,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamMemberListResponse converts a list of members to a DTO.
func ToTeamMemberListResponse(members []*entity.TeamMember) TeamMemberListResponse {
	items := make([]TeamMemberResponse, len(members))
	for i, m := range members {
		items[i] = ToTeamMemberResponse(m)
	}
	return TeamMemberListResponse{Members: items}
}

// ToTeamInviteResponse converts a domain TeamInvite entity to a DTO. The
// invite token travels by email only and is never echoed in responses.
func ToTeamInviteResponse(invite *entity.TeamInvite) TeamInviteResponse {
	return TeamInviteResponse{
		ID:        invite.ID.String(),
		Email:     invite.Email,
		Role:      string(invite.Role),
		Status:    string(invite.Status),
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	}
}
