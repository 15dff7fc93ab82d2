package audit_logs

import (
	"time"

	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Save(log *AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(log).Error
}

func (r *AuditLogRepository) FindLogs(
	workspaceID *uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, int64, error) {
	baseQuery := storage.GetDb().
		Table("audit_logs al").
		Select("al.*, u.email AS user_email, u.name AS user_name, w.name AS workspace_name").
		Joins("LEFT JOIN users u ON u.id = al.user_id").
		Joins("LEFT JOIN workspaces w ON w.id = al.workspace_id")

	countQuery := storage.GetDb().Table("audit_logs al")

	if workspaceID != nil {
		baseQuery = baseQuery.Where("al.workspace_id = ?", *workspaceID)
		countQuery = countQuery.Where("al.workspace_id = ?", *workspaceID)
	}

	if beforeDate != nil {
		baseQuery = baseQuery.Where("al.created_at < ?", *beforeDate)
		countQuery = countQuery.Where("al.created_at < ?", *beforeDate)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*AuditLogDTO
	err := baseQuery.
		Order("al.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&logs).Error

	return logs, total, err
}

// DeleteOlderThan drops audit records past their retention window.
func (r *AuditLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("created_at < ?", cutoff).
		Delete(&AuditLog{})

	return result.RowsAffected, result.Error
}
