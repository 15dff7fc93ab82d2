package janitor

import (
	"taskhive-backend/internal/features/audit_logs"
	"taskhive-backend/internal/util/logger"
)

var janitorBackgroundService = &JanitorBackgroundService{
	auditLogService: audit_logs.GetAuditLogService(),
	logger:          logger.GetLogger(),
}

func GetJanitorBackgroundService() *JanitorBackgroundService {
	return janitorBackgroundService
}
