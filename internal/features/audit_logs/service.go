package audit_logs

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultLimit = 50
const maxLimit = 500

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog persists an audit record. Audit writes never fail the
// calling operation, failures are only logged.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	log := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
	}

	if err := s.auditLogRepository.Save(log); err != nil {
		s.logger.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	return s.getLogs(&workspaceID, request)
}

func (s *AuditLogService) GetAllAuditLogs(
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	return s.getLogs(nil, request)
}

func (s *AuditLogService) DeleteLogsOlderThan(retention time.Duration) (int64, error) {
	return s.auditLogRepository.DeleteOlderThan(time.Now().UTC().Add(-retention))
}

func (s *AuditLogService) getLogs(
	workspaceID *uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.auditLogRepository.FindLogs(workspaceID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
