package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrFailedToCreateProject = errors.New("failed to create project")
	ErrFailedToAddMember     = errors.New("failed to add user to project")
)

// ProjectService handles project related business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	membership  *MembershipService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, membership *MembershipService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		membership:  membership,
	}
}

// CreateProjectInput represents the data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description *string
}

// Create creates a project owned by the user and registers the creator as its
// admin member. The two inserts are atomic; a project never exists without at
// least one admin. Duplicate names per owner are allowed.
func (s *ProjectService) Create(userID string, input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     userID,
	}

	member := &models.ProjectMember{
		UserID:   userID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithAdminMember(project, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateProject):
			return nil, ErrFailedToCreateProject
		case errors.Is(err, repository.ErrCreateProjectMember):
			return nil, ErrFailedToAddMember
		default:
			return nil, fmt.Errorf("failed to complete project creation: %w", err)
		}
	}

	return project, nil
}

// List returns the memberships (project plus role) of the user.
func (s *ProjectService) List(userID string) ([]models.ProjectMember, error) {
	memberships, err := s.projectRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, nil
}

// ProjectDetail bundles a project with its members and the caller's role.
type ProjectDetail struct {
	Project  *models.Project
	Members  []models.ProjectMember
	YourRole models.ProjectRole
}

// GetDetail loads a project the user is allowed to see. A missing project is
// reported before a missing membership so "does not exist" and "not yours"
// stay distinguishable.
func (s *ProjectService) GetDetail(userID, projectID string) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := s.membership.GetMember(userID, projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &ProjectDetail{
		Project:  project,
		Members:  members,
		YourRole: member.Role,
	}, nil
}
