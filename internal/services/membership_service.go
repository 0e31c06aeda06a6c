package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ErrNotAMember is returned when a user has no membership row for a project.
var ErrNotAMember = errors.New("user is not a member of this project")

// MembershipService answers whether a user belongs to a project. Every check
// is a fresh repository read so membership changes take effect immediately.
type MembershipService struct {
	projectRepo repository.ProjectRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(projectRepo repository.ProjectRepository) *MembershipService {
	return &MembershipService{projectRepo: projectRepo}
}

// IsMember reports whether the user has a membership row for the project.
func (s *MembershipService) IsMember(userID, projectID string) (bool, error) {
	if _, err := s.projectRepo.FindMember(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// RequireMember fails with ErrNotAMember unless the user belongs to the project.
func (s *MembershipService) RequireMember(userID, projectID string) error {
	ok, err := s.IsMember(userID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAMember
	}
	return nil
}

// GetMember returns the membership row, including the user's role.
func (s *MembershipService) GetMember(userID, projectID string) (*models.ProjectMember, error) {
	member, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}
