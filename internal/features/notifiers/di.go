package notifiers

import (
	"taskhive-backend/internal/util/logger"
)

var webhookRepository = &WebhookRepository{}

var webhookService = &WebhookService{
	webhookRepository: webhookRepository,
	logger:            logger.GetLogger(),
}

var webhookController = &WebhookController{
	webhookService: webhookService,
}

func GetWebhookService() *WebhookService {
	return webhookService
}

func GetWebhookController() *WebhookController {
	return webhookController
}
