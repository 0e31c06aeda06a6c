package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// ErrAssigneeNotMember is returned when a task's assignee does not belong to
// the task's project.
var ErrAssigneeNotMember = errors.New("assigned user is not a member of this project")

// TaskService handles task related business logic.
type TaskService struct {
	taskRepo   repository.TaskRepository
	membership *MembershipService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, membership *MembershipService) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		membership: membership,
	}
}

// CreateTaskInput represents the data needed to create a task. DueDate is
// already parsed; text parsing is input validation and happens before the
// workflow runs.
type CreateTaskInput struct {
	Title       string
	Description *string
	AssignedID  *string
	DueDate     *time.Time
}

// Create persists a task after its precondition gates pass, in order: the
// actor must be a member of the project, then the assignee (when present)
// must be a member of the same project. Nothing is written if either gate
// fails. New tasks start as TODO.
func (s *TaskService) Create(userID, projectID string, input CreateTaskInput) (*models.Task, error) {
	if err := s.membership.RequireMember(userID, projectID); err != nil {
		return nil, err
	}

	if input.AssignedID != nil {
		ok, err := s.membership.IsMember(*input.AssignedID, projectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAssigneeNotMember
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		ProjectID:   projectID,
		AssignedID:  input.AssignedID,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.AssignedID != nil {
		loaded, err := s.taskRepo.FindByID(task.ID, "Assigned")
		if err == nil {
			task = loaded
		}
	}

	return task, nil
}

// ListByProject returns the project's tasks, newest first, after verifying
// the actor's membership.
func (s *TaskService) ListByProject(userID, projectID string, params utils.PaginationParams) ([]models.Task, int64, error) {
	if err := s.membership.RequireMember(userID, projectID); err != nil {
		return nil, 0, err
	}

	return s.taskRepo.ListByProject(projectID, params)
}
