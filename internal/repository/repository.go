package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithAdminMember creates a project and its initial admin membership
	// within a single transaction.
	CreateWithAdminMember(project *models.Project, member *models.ProjectMember) error

	// FindByID finds a project by ID
	FindByID(id string) (*models.Project, error)

	// FindMember finds a specific project member
	FindMember(projectID, userID string) (*models.ProjectMember, error)

	// ListMembers lists all members of a project
	ListMembers(projectID string) ([]models.ProjectMember, error)

	// ListMembershipsByUserID lists all projects a user is a member of
	ListMembershipsByUserID(userID string) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Task, error)

	// ListByProject retrieves a project's tasks, newest first, with pagination
	ListByProject(projectID string, params utils.PaginationParams) ([]models.Task, int64, error)
}
