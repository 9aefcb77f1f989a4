package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/repository"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

// TeamService handles team management
type TeamService struct {
	db *gorm.DB
}

// NewTeamService creates a new TeamService
func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// ListTeams returns a page of teams ordered by name
func (s *TeamService) ListTeams(ctx context.Context, page, limit int) ([]models.Team, models.Pagination, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to count teams", err)
	}

	var teams []models.Team
	err := s.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&teams).Error
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to list teams", err)
	}

	return teams, models.NewPagination(total, page, limit), nil
}

// GetTeamByID retrieves a team by ID
func (s *TeamService) GetTeamByID(ctx context.Context, teamID uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).Where("id = ?", teamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, apperrors.Internal("failed to load team", err)
	}
	return &team, nil
}

// CreateTeam creates a new team
func (s *TeamService) CreateTeam(ctx context.Context, req *models.TeamRequest) (*models.Team, error) {
	team := models.Team{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	}

	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("team name already exists")
		}
		return nil, apperrors.Internal("failed to create team", err)
	}

	return &team, nil
}

// UpdateTeam updates a team. Renaming is rejected once the team is
// referenced by a match; the logo may change at any time.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID uint, req *models.TeamRequest) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != team.Name {
		referenced, err := s.isReferencedByMatch(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, apperrors.InvalidState("cannot rename a team that has scheduled matches")
		}
	}

	team.Name = req.Name
	team.LogoURL = req.LogoURL

	if err := s.db.WithContext(ctx).Save(team).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("team name already exists")
		}
		return nil, apperrors.Internal("failed to update team", err)
	}

	return team, nil
}

// DeleteTeam deletes a team unless a match references it
func (s *TeamService) DeleteTeam(ctx context.Context, teamID uint) error {
	team, err := s.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}

	referenced, err := s.isReferencedByMatch(ctx, teamID)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.InvalidState("cannot delete a team that has scheduled matches")
	}

	if err := s.db.WithContext(ctx).Delete(team).Error; err != nil {
		return apperrors.Internal("failed to delete team", err)
	}

	return nil
}

func (s *TeamService) isReferencedByMatch(ctx context.Context, teamID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("team1_id = ? OR team2_id = ?", teamID, teamID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to check team references", err)
	}
	return count > 0, nil
}
