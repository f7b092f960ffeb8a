package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/devboard/devboard/internal/constants"
	"github.com/devboard/devboard/internal/models"
	"github.com/devboard/devboard/internal/notify"
	"github.com/devboard/devboard/internal/repository"
	"github.com/devboard/devboard/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	service *services.TaskService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.service = services.NewTaskService(taskRepo, userRepo, notify.NopSink{})
	suite.handler = NewTaskHandler(suite.service)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) createClaimableTask(title string, creatorID uint64) *models.Task {
	task, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:     title,
		Claimable: true,
		CreatorID: creatorID,
	})
	suite.Require().NoError(err)
	return task
}

// Helper function to create an authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUserRole, string(user.Role))
	}

	return c, w
}

func (suite *TaskHandlerTestSuite) TestListTasks_JoinedUsernames() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)
	dev := suite.createTestUser("dev", models.RoleDeveloper)

	_, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:      "Assigned task",
		AssignedTo: &dev.ID,
		CreatorID:  manager.ID,
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, manager)
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Assigned task", tasks[0]["title"])
	assert.Equal(suite.T(), "dev", tasks[0]["assigned_username"])
	assert.Equal(suite.T(), "manager", tasks[0]["created_username"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)

	body, _ := json.Marshal(map[string]interface{}{
		"title":        "New Task",
		"priority":     "high",
		"is_claimable": true,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, manager)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response, "task_id")
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EmptyTitle() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)

	body, _ := json.Marshal(map[string]interface{}{"title": "   "})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, manager)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestClaimTask_ConflictOnSecondClaim() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)
	dev1 := suite.createTestUser("dev1", models.RoleDeveloper)
	dev2 := suite.createTestUser("dev2", models.RoleDeveloper)
	task := suite.createClaimableTask("Open task", manager.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/claim", nil, dev1)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ClaimTask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createAuthContext("POST", "/api/tasks/1/claim", nil, dev2)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ClaimTask(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	claimed, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(claimed.AssignedTo)
	assert.Equal(suite.T(), dev1.ID, *claimed.AssignedTo)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	admin := suite.createTestUser("admin", models.RoleAdmin)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/999", nil, admin)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_RemovesFromList() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	task := suite.createClaimableTask("Doomed", admin.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, admin)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, err := suite.service.GetTask(task.ID)
	assert.ErrorIs(suite.T(), err, services.ErrTaskNotFound)
}

func (suite *TaskHandlerTestSuite) TestAdvanceTask_DeveloperOwnTask() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)
	dev := suite.createTestUser("dev", models.RoleDeveloper)
	task := suite.createClaimableTask("Task", manager.ID)
	suite.Require().NoError(suite.service.ClaimTask(task.ID, dev.ID))

	c, w := suite.createAuthContext("POST", "/api/tasks/1/advance", nil, dev)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.AdvanceTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), string(models.TaskStatusInProgress), response["status"])
}

func (suite *TaskHandlerTestSuite) TestAdvanceTask_ForeignTaskForbidden() {
	manager := suite.createTestUser("manager", models.RoleCommunityManager)
	dev := suite.createTestUser("dev", models.RoleDeveloper)
	intruder := suite.createTestUser("intruder", models.RoleDeveloper)
	task := suite.createClaimableTask("Task", manager.ID)
	suite.Require().NoError(suite.service.ClaimTask(task.ID, dev.ID))

	c, w := suite.createAuthContext("POST", "/api/tasks/1/advance", nil, intruder)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.AdvanceTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
