package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProjectAuthTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newProjectAuthRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})
	r.GET("/projects/:id", RequireProjectAccess(), func(c *gin.Context) {
		project := c.MustGet(ContextKeyProject).(models.Project)
		response.Respond(c, http.StatusOK, gin.H{"id": project.ID})
	})
	return r
}

func TestRequireProjectAccess_ProjectNotFound(t *testing.T) {
	setupProjectAuthTest(t)

	r := newProjectAuthRouter("user-1")
	req := httptest.NewRequest(http.MethodGet, "/projects/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	require.Equal(t, "404", env.Error.Code)
}

func TestRequireProjectAccess_NotAMember(t *testing.T) {
	db := setupProjectAuthTest(t)

	owner := models.User{Email: "owner@example.com", PasswordHash: "digest"}
	require.NoError(t, db.Create(&owner).Error)

	project := models.Project{Name: "Launch", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    owner.ID,
		Role:      models.RoleAdmin,
		JoinedAt:  time.Now(),
	}).Error)

	outsider := models.User{Email: "outsider@example.com", PasswordHash: "digest"}
	require.NoError(t, db.Create(&outsider).Error)

	r := newProjectAuthRouter(outsider.ID)
	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The project exists, so the caller learns it is off limits rather than absent.
	require.Equal(t, http.StatusForbidden, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	require.Equal(t, "403", env.Error.Code)
}

func TestRequireProjectAccess_Member(t *testing.T) {
	db := setupProjectAuthTest(t)

	owner := models.User{Email: "owner@example.com", PasswordHash: "digest"}
	require.NoError(t, db.Create(&owner).Error)

	project := models.Project{Name: "Launch", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    owner.ID,
		Role:      models.RoleAdmin,
		JoinedAt:  time.Now(),
	}).Error)

	r := newProjectAuthRouter(owner.ID)
	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
