package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	projectService *services.ProjectService
	tokens         *token.Service
	cfg            *config.Config
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	cfg := testConfig()
	tokens := token.NewService(cfg.TokenSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membership := services.NewMembershipService(projectRepo)
	authService := services.NewAuthService(userRepo, services.NewBcryptHasher(), tokens)
	projectService := services.NewProjectService(projectRepo, membership)

	handler := NewProjectHandler(projectService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	requireAuth := middleware.RequireAuth(tokens, cfg.AuthTokenSource)
	projects := r.Group("/api/projects")
	projects.Use(requireAuth)
	{
		projects.GET("", handler.ListProjects)
		projects.POST("", handler.CreateProject)
		projects.GET("/:id", middleware.RequireProjectAccess(), handler.GetProject)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		projectService: projectService,
		tokens:         tokens,
		cfg:            cfg,
	}
}

func (env projectTestEnv) signup(t *testing.T, email string) (*models.User, *http.Cookie) {
	t.Helper()
	user, err := env.authService.Signup(services.SignupInput{Email: email, Password: "Password123"})
	require.NoError(t, err)
	signed, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, &http.Cookie{Name: constants.AuthCookieName, Value: signed}
}

func (env projectTestEnv) get(t *testing.T, url string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	user, cookie := env.signup(t, "a@x.com")

	w := postJSON(t, env.router, "/api/projects", map[string]string{
		"name":        "Launch",
		"description": "initial rollout",
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	require.Nil(t, resp.Error)

	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(resp.Data, &project))
	require.Equal(t, "Launch", project.Name)
	require.Equal(t, user.ID, project.OwnerID)

	// The creator became the project's admin member in the same operation
	var member models.ProjectMember
	require.NoError(t, env.db.Where("project_id = ? AND user_id = ?", project.ID, user.ID).First(&member).Error)
	require.Equal(t, models.RoleAdmin, member.Role)
}

func TestProjectHandler_CreateProject_Validation(t *testing.T) {
	env := setupProjectTestEnv(t)
	_, cookie := env.signup(t, "a@x.com")

	w := postJSON(t, env.router, "/api/projects", map[string]string{}, cookie)

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	require.Equal(t, "400", resp.Error.Code)
	require.Contains(t, resp.Error.Messages, "name is required")
}

func TestProjectHandler_ListProjects(t *testing.T) {
	env := setupProjectTestEnv(t)
	user, cookie := env.signup(t, "a@x.com")

	_, err := env.projectService.Create(user.ID, services.CreateProjectInput{Name: "Launch"})
	require.NoError(t, err)
	_, err = env.projectService.Create(user.ID, services.CreateProjectInput{Name: "Research"})
	require.NoError(t, err)

	w := env.get(t, "/api/projects", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	require.Nil(t, resp.Error)

	var projects []dto.ProjectWithRoleDTO
	require.NoError(t, json.Unmarshal(resp.Data, &projects))
	require.Len(t, projects, 2)
	for _, p := range projects {
		require.Equal(t, models.RoleAdmin, p.Role)
	}
}

func TestProjectHandler_GetProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	user, cookie := env.signup(t, "a@x.com")

	project, err := env.projectService.Create(user.ID, services.CreateProjectInput{Name: "Launch"})
	require.NoError(t, err)

	w := env.get(t, "/api/projects/"+project.ID, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	require.Nil(t, resp.Error)

	var detail dto.ProjectDetailDTO
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	require.Equal(t, project.ID, detail.ID)
	require.Equal(t, models.RoleAdmin, detail.YourRole)
	require.Len(t, detail.Members, 1)
}

func TestProjectHandler_GetProject_NotAMember(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner, _ := env.signup(t, "a@x.com")
	_, outsiderCookie := env.signup(t, "b@x.com")

	project, err := env.projectService.Create(owner.ID, services.CreateProjectInput{Name: "Launch"})
	require.NoError(t, err)

	w := env.get(t, "/api/projects/"+project.ID, outsiderCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	require.Equal(t, "403", resp.Error.Code)
}

func TestProjectHandler_GetProject_NotFound(t *testing.T) {
	env := setupProjectTestEnv(t)
	_, cookie := env.signup(t, "a@x.com")

	w := env.get(t, "/api/projects/missing-id", cookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	require.Equal(t, "404", resp.Error.Code)
}
