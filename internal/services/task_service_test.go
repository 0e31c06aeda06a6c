package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

type taskServiceTestEnv struct {
	db       *gorm.DB
	svc      *TaskService
	owner    *models.User
	member   *models.User
	outsider *models.User
	project  *models.Project
}

func setupTaskServiceTestEnv(t *testing.T) taskServiceTestEnv {
	t.Helper()

	db := setupServiceTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	membership := NewMembershipService(projectRepo)
	svc := NewTaskService(repository.NewTaskRepository(db), membership)

	owner := createServiceTestUser(t, db, "owner@example.com")
	member := createServiceTestUser(t, db, "member@example.com")
	outsider := createServiceTestUser(t, db, "outsider@example.com")

	project, err := newProjectService(db).Create(owner.ID, CreateProjectInput{Name: "Launch"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}).Error)

	return taskServiceTestEnv{
		db:       db,
		svc:      svc,
		owner:    owner,
		member:   member,
		outsider: outsider,
		project:  project,
	}
}

func (env taskServiceTestEnv) taskCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	return count
}

func TestTaskService_Create(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.svc.Create(env.owner.ID, env.project.ID, CreateTaskInput{Title: "Write docs"})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Equal(t, env.project.ID, task.ProjectID)
	require.Nil(t, task.AssignedID)
}

func TestTaskService_Create_WithMemberAssignee(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.svc.Create(env.owner.ID, env.project.ID, CreateTaskInput{
		Title:      "Write docs",
		AssignedID: &env.member.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssignedID)
	require.Equal(t, env.member.ID, *task.AssignedID)
	require.NotNil(t, task.Assigned)
	require.Equal(t, env.member.Email, task.Assigned.Email)
}

func TestTaskService_Create_ActorNotAMember(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.svc.Create(env.outsider.ID, env.project.ID, CreateTaskInput{Title: "Write docs"})
	require.ErrorIs(t, err, ErrNotAMember)
	require.Zero(t, env.taskCount(t))
}

func TestTaskService_Create_AssigneeNotAMember(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.svc.Create(env.owner.ID, env.project.ID, CreateTaskInput{
		Title:      "Write docs",
		AssignedID: &env.outsider.ID,
	})
	require.ErrorIs(t, err, ErrAssigneeNotMember)

	// The failed gate left nothing behind
	require.Zero(t, env.taskCount(t))
}

func TestTaskService_ListByProject(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.svc.Create(env.owner.ID, env.project.ID, CreateTaskInput{Title: "Write docs"})
	require.NoError(t, err)

	tasks, total, err := env.svc.ListByProject(env.member.ID, env.project.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
}

func TestTaskService_ListByProject_NotAMember(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, _, err := env.svc.ListByProject(env.outsider.ID, env.project.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.ErrorIs(t, err, ErrNotAMember)
}
