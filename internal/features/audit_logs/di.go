package audit_logs

import (
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{}

var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
	logger:             logger.GetLogger(),
}

var auditLogController = &AuditLogController{
	auditLogService:      auditLogService,
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
