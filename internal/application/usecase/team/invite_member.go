package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

const (
	// InviteTokenLength is the length of the invite token in bytes.
	InviteTokenLength = 32
	// InviteExpirationDays is the number of days until an invite expires.
	InviteExpirationDays = 7
)

// emailRegex is compiled once at package level for performance.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// InviteMemberInput represents the input for inviting a member.
type InviteMemberInput struct {
	TeamID uuid.UUID
	Email  string
	Role   entity.Role
	Actor  authz.Actor
}

// InviteMemberOutput represents the output of inviting a member.
type InviteMemberOutput struct {
	Invite *entity.TeamInvite
}

// InviteMemberUseCase handles inviting users to a team by email.
type InviteMemberUseCase struct {
	teamRepo    adapter.TeamRepository
	userRepo    adapter.UserRepository
	emailSender adapter.EmailSender
	gate        *authz.Gate
}

// NewInviteMemberUseCase creates a new InviteMemberUseCase instance.
func NewInviteMemberUseCase(teamRepo adapter.TeamRepository, userRepo adapter.UserRepository, emailSender adapter.EmailSender, gate *authz.Gate) *InviteMemberUseCase {
	return &InviteMemberUseCase{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		emailSender: emailSender,
		gate:        gate,
	}
}

// Execute creates a pending invite and emails the invitee. Email delivery is
// best-effort: a provider failure is logged, the invite still stands and the
// token can be shared out of band.
func (uc *InviteMemberUseCase) Execute(ctx context.Context, input InviteMemberInput) (*InviteMemberOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if !emailRegex.MatchString(email) {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeMissingTeamFields,
			"invalid email address",
			nil,
		)
	}

	role := input.Role
	if role == entity.RoleNone {
		role = entity.RoleViewer
	}
	if !role.IsValid() {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInvalidRole,
			"invalid member role",
			domainerror.ErrInvalidRole,
		)
	}

	if err := authorizeMembershipChange(ctx, uc.teamRepo, uc.gate, input.TeamID, input.Actor); err != nil {
		return nil, err
	}

	inviter, err := uc.userRepo.FindByID(ctx, input.Actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inviter info: %w", err)
	}
	if inviter != nil && strings.EqualFold(inviter.Email, email) {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeCannotInviteSelf,
			"you cannot invite yourself",
			domainerror.ErrCannotInviteSelf,
		)
	}

	existingUser, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}
	if existingUser != nil {
		existing, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, input.TeamID, existingUser.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing membership: %w", err)
		}
		if existing != nil {
			return nil, domainerror.NewTeamError(
				domainerror.ErrCodeMemberAlreadyExists,
				"user already has access to this team",
				domainerror.ErrMemberAlreadyExists,
			)
		}
	}

	pending, err := uc.teamRepo.FindPendingInviteByTeamAndEmail(ctx, input.TeamID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invites: %w", err)
	}
	if pending != nil {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInviteAlreadyExists,
			"an invite already exists for this email",
			domainerror.ErrInviteAlreadyExists,
		)
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, InviteExpirationDays)
	invite := entity.NewTeamInvite(input.TeamID, email, token, role, input.Actor.UserID, expiresAt)

	if err := uc.teamRepo.CreateInvite(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	uc.sendInviteEmail(ctx, invite, inviter)

	return &InviteMemberOutput{Invite: invite}, nil
}

func (uc *InviteMemberUseCase) sendInviteEmail(ctx context.Context, invite *entity.TeamInvite, inviter *entity.User) {
	if uc.emailSender == nil {
		return
	}

	inviterName := "A teammate"
	if inviter != nil {
		inviterName = inviter.Name
	}

	_, err := uc.emailSender.Send(ctx, adapter.SendEmailInput{
		To:      invite.Email,
		Subject: "You have been invited to a LedgerBook team",
		HTML: fmt.Sprintf(
			"<p>%s invited you to join their team as %s.</p><p>Your invite token: <strong>%s</strong></p><p>This invite expires on %s.</p>",
			inviterName, invite.Role, invite.Token, invite.ExpiresAt.Format("January 2, 2006"),
		),
		Text: fmt.Sprintf(
			"%s invited you to join their team as %s. Your invite token: %s (expires %s)",
			inviterName, invite.Role, invite.Token, invite.ExpiresAt.Format("January 2, 2006"),
		),
	})
	if err != nil {
		slog.Warn("failed to send invite email",
			slog.String("email", invite.Email),
			slog.String("error", err.Error()),
		)
	}
}

// generateInviteToken generates a secure random token for invites.
func generateInviteToken() (string, error) {
	bytes := make([]byte, InviteTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
