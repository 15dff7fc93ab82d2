package notifiers

import (
	"time"

	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
)

type WebhookRepository struct{}

func (r *WebhookRepository) Save(webhook *Webhook) error {
	if webhook.ID == uuid.Nil {
		webhook.ID = uuid.New()
	}

	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Save(webhook).Error
}

func (r *WebhookRepository) FindByID(webhookID uuid.UUID) (*Webhook, error) {
	var webhook Webhook

	if err := storage.GetDb().Where("id = ?", webhookID).First(&webhook).Error; err != nil {
		return nil, err
	}

	return &webhook, nil
}

func (r *WebhookRepository) FindAll() ([]*Webhook, error) {
	var webhooks []*Webhook

	err := storage.GetDb().Order("created_at ASC").Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) FindByWorkspaceID(workspaceID uuid.UUID) ([]*Webhook, error) {
	var webhooks []*Webhook

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) Delete(webhookID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", webhookID).Delete(&Webhook{}).Error
}
