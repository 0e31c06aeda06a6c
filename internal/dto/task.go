package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   string            `json:"projectId"`
	AssignedID  *string           `json:"assignedId"`
	DueDate     *time.Time        `json:"dueDate"`
	Assigned    *UserSummaryDTO   `json:"assigned"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TaskListDTO represents a paginated list of tasks
type TaskListDTO struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		AssignedID:  task.AssignedID,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include the assignee summary if preloaded
	if task.Assigned != nil && task.Assigned.ID != "" {
		assigned := ToUserSummaryDTO(*task.Assigned)
		dto.Assigned = &assigned
	}

	return dto
}

// ToTaskListDTO converts a slice of tasks to TaskListDTO
func ToTaskListDTO(tasks []models.Task, params utils.PaginationParams, total int64) TaskListDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListDTO{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
