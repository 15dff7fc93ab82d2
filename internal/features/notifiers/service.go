package notifiers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookService fans committed cascade summaries out to subscribed
// webhooks. Delivery is best effort and never blocks the mutation that
// produced the event.
type WebhookService struct {
	webhookRepository *WebhookRepository
	logger            *slog.Logger
}

// NotifyCascadeApplied implements cascade.Notifier.
func (s *WebhookService) NotifyCascadeApplied(summary *cascade.AppliedSummary) {
	webhooks, err := s.webhookRepository.FindAll()
	if err != nil {
		s.logger.Error("failed to load webhooks for change event", "error", err)
		return
	}

	if len(webhooks) == 0 {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		s.logger.Error("failed to encode change event", "error", err)
		return
	}

	for _, webhook := range webhooks {
		go s.deliver(webhook, summary.Intent, payload)
	}
}

func (s *WebhookService) deliver(webhook *Webhook, intent string, payload []byte) {
	if err := webhook.Send(s.logger, intent, payload); err != nil {
		s.logger.Error("webhook delivery failed",
			"webhookId", webhook.ID, "url", webhook.URL, "error", err)
	}

	// persist LastSendError so the UI can surface delivery problems
	if err := s.webhookRepository.Save(webhook); err != nil {
		s.logger.Error("failed to update webhook state", "webhookId", webhook.ID, "error", err)
	}
}

func (s *WebhookService) CreateWebhook(webhook *Webhook) (*Webhook, error) {
	if err := webhook.Validate(); err != nil {
		return nil, err
	}

	if err := s.webhookRepository.Save(webhook); err != nil {
		return nil, err
	}

	return webhook, nil
}

func (s *WebhookService) GetWebhooks(workspaceID *uuid.UUID) ([]*Webhook, error) {
	if workspaceID != nil {
		return s.webhookRepository.FindByWorkspaceID(*workspaceID)
	}

	return s.webhookRepository.FindAll()
}

func (s *WebhookService) DeleteWebhook(webhookID uuid.UUID) error {
	_, err := s.webhookRepository.FindByID(webhookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: webhook %s", errs.ErrNotFound, webhookID)
		}

		return err
	}

	return s.webhookRepository.Delete(webhookID)
}
