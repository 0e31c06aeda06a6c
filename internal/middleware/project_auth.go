package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"gorm.io/gorm"
)

// Context keys set by RequireProjectAccess
const (
	ContextKeyProject       = "project"
	ContextKeyProjectMember = "project_member"
)

// RequireProjectAccess checks that the project in the URL exists and that the
// current user is a member of it. Existence is checked first so a missing
// project surfaces as 404 while a real project the user cannot access
// surfaces as 403.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Param("id")

		userID, exists := GetUserID(c)
		if !exists {
			response.AbortWithError(c, apperrors.Unauthenticated("missing token"))
			return
		}

		var project models.Project
		if err := database.GetDB().Where("id = ?", projectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortWithError(c, apperrors.NotFound("project not found"))
				return
			}
			response.AbortWithError(c, err)
			return
		}

		var member models.ProjectMember
		if err := database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortWithError(c, apperrors.Forbidden("you do not have access to this project"))
				return
			}
			response.AbortWithError(c, err)
			return
		}

		c.Set(ContextKeyProject, project)
		c.Set(ContextKeyProjectMember, member)
		c.Next()
	}
}
