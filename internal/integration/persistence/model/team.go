package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// TeamModel represents the teams table in the database. DeletedAt is a plain
// nullable timestamp managed by explicit queries, not gorm's soft-delete
// hook, because lifecycle transitions are conditional updates with their own
// visibility rules.
type TeamModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(100);not null"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeletedAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the TeamModel.
func (TeamModel) TableName() string {
	return "teams"
}

// ToEntity converts a TeamModel to a domain Team entity.
func (m *TeamModel) ToEntity() *entity.Team {
	lifecycle := valueobject.ActiveLifecycle()
	if m.DeletedAt != nil {
		lifecycle = valueobject.SoftDeletedLifecycle(*m.DeletedAt)
	}

	return &entity.Team{
		ID:        m.ID,
		Name:      m.Name,
		CreatedBy: m.CreatedBy,
		Lifecycle: lifecycle,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TeamFromEntity creates a TeamModel from a domain Team entity.
func TeamFromEntity(team *entity.Team) *TeamModel {
	return &TeamModel{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		DeletedAt: team.Lifecycle.DeletedAt(),
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
}

// TeamMemberModel represents the team_members table in the database.
type TeamMemberModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	Role     string    `gorm:"type:varchar(20);not null"`
	JoinedAt time.Time `gorm:"not null"`
	// User information (joined from users table)
	UserName  string `gorm:"-"`
	UserEmail string `gorm:"-"`
}

// TableName returns the table name for the TeamMemberModel.
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// ToEntity converts a TeamMemberModel to a domain TeamMember entity.
func (m *TeamMemberModel) ToEntity() *entity.TeamMember {
	return &entity.TeamMember{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Role:      entity.Role(m.Role),
		JoinedAt:  m.JoinedAt,
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
	}
}

// TeamMemberFromEntity creates a TeamMemberModel from a domain TeamMember entity.
func TeamMemberFromEntity(member *entity.TeamMember) *TeamMemberModel {
	return &TeamMemberModel{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

// TeamInviteModel represents the team_invites table in the database.
type TeamInviteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Role      string    `gorm:"type:varchar(20);not null"`
	InvitedBy uuid.UUID `gorm:"type:uuid;not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TeamInviteModel.
func (TeamInviteModel) TableName() string {
	return "team_invites"
}

// ToEntity converts a TeamInviteModel to a domain TeamInvite entity.
func (m *TeamInviteModel) ToEntity() *entity.TeamInvite {
	return &entity.TeamInvite{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Email:     m.Email,
		Token:     m.Token,
		Role:      entity.Role(m.Role),
		InvitedBy: m.InvitedBy,
		Status:    entity.InviteStatus(m.Status),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// TeamInviteFromEntity creates a TeamInviteModel from a domain TeamInvite entity.
func TeamInviteFromEntity(invite *entity.TeamInvite) *TeamInviteModel {
	return &TeamInviteModel{
		ID:        invite.ID,
		TeamID:    invite.TeamID,
		Email:     invite.Email,
		Token:     invite.Token,
		Role:      string(invite.Role),
		InvitedBy: invite.InvitedBy,
		Status:    string(invite.Status),
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	}
}
