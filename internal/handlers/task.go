package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssignedID  *string `json:"assignedId"`
	DueDate     *string `json:"dueDate"`

	parsedDueDate *time.Time
}

// validate aggregates every field failure and parses the due date text. A due
// date that does not parse is a validation failure, surfaced before any
// authorization check or write.
func (r *createTaskRequest) validate() []string {
	var messages []string
	if r.Title == "" {
		messages = append(messages, "title is required")
	} else if len(r.Title) > constants.MaxTaskTitleLength {
		messages = append(messages, fmt.Sprintf("title must be at most %d characters", constants.MaxTaskTitleLength))
	}
	if r.Description != nil && len(*r.Description) > constants.MaxTaskDescriptionLength {
		messages = append(messages, fmt.Sprintf("description must be at most %d characters", constants.MaxTaskDescriptionLength))
	}
	if r.AssignedID != nil && *r.AssignedID == "" {
		messages = append(messages, "assignedId must not be empty")
	}
	if r.DueDate != nil && *r.DueDate != "" {
		parsed, err := parseDueDate(*r.DueDate)
		if err != nil {
			messages = append(messages, "dueDate must be a valid date")
		} else {
			r.parsedDueDate = parsed
		}
	}
	return messages
}

func parseDueDate(value string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a task in the project from the URL.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation([]string{"invalid request body"}))
		return
	}
	if messages := req.validate(); len(messages) > 0 {
		response.Fail(c, apperrors.Validation(messages))
		return
	}

	task, err := h.taskService.Create(userID, c.Param("id"), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedID:  req.AssignedID,
		DueDate:     req.parsedDueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Respond(c, http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the project's tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListByProject(userID, c.Param("id"), params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Respond(c, http.StatusOK, dto.ToTaskListDTO(tasks, params, total))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssigneeNotMember):
		response.Fail(c, apperrors.Forbidden(err.Error()))
	case errors.Is(err, services.ErrNotAMember):
		response.Fail(c, apperrors.Forbidden(err.Error()))
	default:
		response.Fail(c, err)
	}
}
