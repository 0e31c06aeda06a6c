package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r *createProjectRequest) validate() []string {
	var messages []string
	if r.Name == "" {
		messages = append(messages, "name is required")
	} else if len(r.Name) > constants.MaxProjectNameLength {
		messages = append(messages, fmt.Sprintf("name must be at most %d characters", constants.MaxProjectNameLength))
	}
	if r.Description != nil && len(*r.Description) > constants.MaxProjectDescriptionLength {
		messages = append(messages, fmt.Sprintf("description must be at most %d characters", constants.MaxProjectDescriptionLength))
	}
	return messages
}

// CreateProject creates a project with the caller as its admin member.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation([]string{"invalid request body"}))
		return
	}
	if messages := req.validate(); len(messages) > 0 {
		response.Fail(c, apperrors.Validation(messages))
		return
	}

	project, err := h.projectService.Create(userID, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Respond(c, http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns all projects the caller is a member of.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	memberships, err := h.projectService.List(userID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, m := range memberships {
		projects[i] = dto.ToProjectWithRoleDTO(m)
	}

	response.Respond(c, http.StatusOK, projects)
}

// GetProject returns project details including members.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	detail, err := h.projectService.GetDetail(userID, c.Param("id"))
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Respond(c, http.StatusOK, dto.ToProjectDetailDTO(*detail.Project, detail.Members, detail.YourRole))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		response.Fail(c, apperrors.NotFound(err.Error()))
	case errors.Is(err, services.ErrNotAMember):
		response.Fail(c, apperrors.Forbidden(err.Error()))
	default:
		response.Fail(c, err)
	}
}
