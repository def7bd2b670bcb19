package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

// teamRepository implements the adapter.TeamRepository interface.
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository instance.
func NewTeamRepository(db *gorm.DB) adapter.TeamRepository {
	return &teamRepository{
		db: db,
	}
}

// CreateTeam creates a new team in the database.
func (r *teamRepository) CreateTeam(ctx context.Context, team *entity.Team) error {
	teamModel := model.TeamFromEntity(team)
	result := r.db.WithContext(ctx).Create(teamModel)
	return result.Error
}

// FindTeamByID retrieves an active team by its ID.
func (r *teamRepository) FindTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	var teamModel model.TeamModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&teamModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return teamModel.ToEntity(), nil
}

// FindTeamByIDUnscoped retrieves a team by its ID including soft-deleted rows.
func (r *teamRepository) FindTeamByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	var teamModel model.TeamModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&teamModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return teamModel.ToEntity(), nil
}

// FindTeamsByUserID retrieves all active teams a user belongs to.
func (r *teamRepository) FindTeamsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TeamListItem, error) {
	var results []struct {
		ID          uuid.UUID
		Name        string
		MemberCount int
		Role        string
		CreatedAt   time.Time
	}

	query := `
		SELECT
			t.id,
			t.name,
			(SELECT COUNT(*) FROM team_members tm2 WHERE tm2.team_id = t.id) as member_count,
			tm.role,
			t.created_at
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = ? AND t.deleted_at IS NULL
		ORDER BY t.created_at DESC
	`

	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&results).Error; err != nil {
		return nil, err
	}

	teams := make([]*entity.TeamListItem, len(results))
	for i, res := range results {
		teams[i] = &entity.TeamListItem{
			ID:          res.ID,
			Name:        res.Name,
			MemberCount: res.MemberCount,
			Role:        entity.Role(res.Role),
			CreatedAt:   res.CreatedAt,
		}
	}

	return teams, nil
}

// ListAllTeams retrieves every team, soft-deleted included.
func (r *teamRepository) ListAllTeams(ctx context.Context) ([]*entity.Team, error) {
	var teamModels []model.TeamModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&teamModels)
	if result.Error != nil {
		return nil, result.Error
	}

	teams := make([]*entity.Team, len(teamModels))
	for i := range teamModels {
		teams[i] = teamModels[i].ToEntity()
	}
	return teams, nil
}

// UpdateTeam updates an existing team in the database.
func (r *teamRepository) UpdateTeam(ctx context.Context, team *entity.Team) error {
	team.UpdatedAt = time.Now().UTC()
	teamModel := model.TeamFromEntity(team)
	result := r.db.WithContext(ctx).Save(teamModel)
	return result.Error
}

// SoftDeleteTeam marks an active team as deleted at the given instant. The
// WHERE clause makes the transition conditional so two concurrent deletes
// cannot both succeed.
func (r *teamRepository) SoftDeleteTeam(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TeamModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": at,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreTeam clears the deletion timestamp of a soft-deleted team.
func (r *teamRepository) RestoreTeam(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TeamModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeTeam permanently deletes a team and all of its descendants in a
// single transaction, children before parents so foreign keys hold
// throughout.
func (r *teamRepository) PurgeTeam(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookIDs []uuid.UUID
		if err := tx.Model(&model.BookModel{}).Where("team_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
			return err
		}

		if len(bookIDs) > 0 {
			var accountIDs []uuid.UUID
			if err := tx.Model(&model.AccountModel{}).Where("book_id IN ?", bookIDs).Pluck("id", &accountIDs).Error; err != nil {
				return err
			}

			if len(accountIDs) > 0 {
				if err := tx.Where("account_id IN ?", accountIDs).Delete(&model.TransactionModel{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("book_id IN ?", bookIDs).Delete(&model.AccountModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id IN ? AND parent_id IS NOT NULL", bookIDs).Delete(&model.CategoryModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id IN ?", bookIDs).Delete(&model.CategoryModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("team_id = ?", id).Delete(&model.BookModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("team_id = ?", id).Delete(&model.TeamMemberModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.TeamInviteModel{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.TeamModel{}).Error
	})
}

// CreateMember adds a new member to a team. A duplicate (team, user) pair is
// reported as a membership conflict.
func (r *teamRepository) CreateMember(ctx context.Context, member *entity.TeamMember) error {
	memberModel := model.TeamMemberFromEntity(member)
	result := r.db.WithContext(ctx).Create(memberModel)
	if result.Error != nil && isUniqueViolation(result.Error) {
		return domainerror.NewTeamError(
			domainerror.ErrCodeMemberAlreadyExists,
			"user already has access to this team",
			domainerror.ErrMemberAlreadyExists,
		)
	}
	return result.Error
}

// FindMemberByID retrieves a team member by their membership ID.
func (r *teamRepository) FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error) {
	var memberModel model.TeamMemberModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	r.fillUserInfo(ctx, &memberModel)
	return memberModel.ToEntity(), nil
}

// FindMemberByTeamAndUser retrieves a membership row by team and user ID,
// regardless of the team's lifecycle state.
func (r *teamRepository) FindMemberByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error) {
	var memberModel model.TeamMemberModel
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// FindMembersByTeamID retrieves all members of a team with user details.
func (r *teamRepository) FindMembersByTeamID(ctx context.Context, teamID uuid.UUID) ([]*entity.TeamMember, error) {
	var results []struct {
		ID        uuid.UUID
		TeamID    uuid.UUID
		UserID    uuid.UUID
		Role      string
		JoinedAt  time.Time
		UserName  string
		UserEmail string
	}

	query := `
		SELECT
			tm.id,
			tm.team_id,
			tm.user_id,
			tm.role,
			tm.joined_at,
			u.name as user_name,
			u.email as user_email
		FROM team_members tm
		INNER JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = ?
		ORDER BY tm.joined_at ASC
	`

	if err := r.db.WithContext(ctx).Raw(query, teamID).Scan(&results).Error; err != nil {
		return nil, err
	}

	members := make([]*entity.TeamMember, len(results))
	for i, res := range results {
		members[i] = &entity.TeamMember{
			ID:        res.ID,
			TeamID:    res.TeamID,
			UserID:    res.UserID,
			Role:      entity.Role(res.Role),
			JoinedAt:  res.JoinedAt,
			UserName:  res.UserName,
			UserEmail: res.UserEmail,
		}
	}

	return members, nil
}

// UpdateMember updates a team member.
func (r *teamRepository) UpdateMember(ctx context.Context, member *entity.TeamMember) error {
	memberModel := model.TeamMemberFromEntity(member)
	result := r.db.WithContext(ctx).Save(memberModel)
	return result.Error
}

// DeleteMember removes a member from a team.
func (r *teamRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TeamMemberModel{}, "id = ?", id)
	return result.Error
}

// CountAdminsByTeamID counts the number of admin members in a team.
func (r *teamRepository) CountAdminsByTeamID(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TeamMemberModel{}).
		Where("team_id = ? AND role = ?", teamID, string(entity.RoleAdmin)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// CreateInvite creates a new team invitation.
func (r *teamRepository) CreateInvite(ctx context.Context, invite *entity.TeamInvite) error {
	inviteModel := model.TeamInviteFromEntity(invite)
	result := r.db.WithContext(ctx).Create(inviteModel)
	return result.Error
}

// FindInviteByToken retrieves an invitation by its token.
func (r *teamRepository) FindInviteByToken(ctx context.Context, token string) (*entity.TeamInvite, error) {
	var inviteModel model.TeamInviteModel
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&inviteModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return inviteModel.ToEntity(), nil
}

// FindPendingInviteByTeamAndEmail retrieves a pending invite by team and email.
func (r *teamRepository) FindPendingInviteByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*entity.TeamInvite, error) {
	var inviteModel model.TeamInviteModel
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND email = ? AND status = ?", teamID, email, string(entity.InviteStatusPending)).
		First(&inviteModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return inviteModel.ToEntity(), nil
}

// UpdateInvite updates an invitation.
func (r *teamRepository) UpdateInvite(ctx context.Context, invite *entity.TeamInvite) error {
	inviteModel := model.TeamInviteFromEntity(invite)
	result := r.db.WithContext(ctx).Save(inviteModel)
	return result.Error
}

func (r *teamRepository) fillUserInfo(ctx context.Context, memberModel *model.TeamMemberModel) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", memberModel.UserID).First(&userModel).Error; err == nil {
		memberModel.UserName = userModel.Name
		memberModel.UserEmail = userModel.Email
	}
}
