package util_testing

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"

	"taskhive-backend/internal/features/audit_logs"
	projects_models "taskhive-backend/internal/features/projects/models"
	projects_services "taskhive-backend/internal/features/projects/services"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	tasks_services "taskhive-backend/internal/features/tasks/services"
	users_models "taskhive-backend/internal/features/users/models"
	users_services "taskhive-backend/internal/features/users/services"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"
	"taskhive-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

var setupOnce sync.Once

// EnsureTestDb migrates the test database and wires the cross-feature
// dependencies that main() wires in production. Safe to call from every
// test, the work runs once.
func EnsureTestDb() {
	setupOnce.Do(func() {
		db := storage.GetDb()

		err := db.AutoMigrate(
			&users_models.User{},
			&workspaces_models.Workspace{},
			&workspaces_models.WorkspaceMembership{},
			&workspaces_models.WorkspaceInvitation{},
			&projects_models.Project{},
			&projects_models.ProjectMembership{},
			&tasks_models.Task{},
			&tasks_models.Subtask{},
			&tasks_models.Comment{},
			&audit_logs.AuditLog{},
		)
		if err != nil {
			panic("failed to migrate test database: " + err.Error())
		}

		auditLogService := audit_logs.GetAuditLogService()
		users_services.GetUserService().SetAuditLogWriter(auditLogService)
		workspaces_services.GetWorkspaceService().SetAuditLogWriter(auditLogService)
		workspaces_services.GetMembershipService().SetAuditLogWriter(auditLogService)
		projects_services.GetProjectService().SetAuditLogWriter(auditLogService)
		tasks_services.GetTaskService().SetAuditLogWriter(auditLogService)
	})
}

// MakeAPIRequest performs a request against the given router and returns
// the recorder. A non-empty token is sent as a bearer credential.
func MakeAPIRequest(
	router *gin.Engine,
	method, url string,
	body any,
	token string,
) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic("failed to encode request body: " + err.Error())
		}
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}
