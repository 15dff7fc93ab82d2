package notifiers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookMethod string

const (
	WebhookMethodGET  WebhookMethod = "GET"
	WebhookMethodPOST WebhookMethod = "POST"
)

type WebhookHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Webhook is a change-feed subscription. Scoped to a workspace when
// WorkspaceID is set, otherwise it receives every committed cascade.
type Webhook struct {
	ID            uuid.UUID     `json:"id"            gorm:"column:id;primaryKey"`
	WorkspaceID   *uuid.UUID    `json:"workspaceId"   gorm:"column:workspace_id;index"`
	Name          string        `json:"name"          gorm:"column:name;not null"`
	URL           string        `json:"url"           gorm:"column:url;not null"`
	Method        WebhookMethod `json:"method"        gorm:"column:method;not null"`
	HeadersJSON   string        `json:"-"             gorm:"column:headers;type:text"`
	LastSendError *string       `json:"lastSendError" gorm:"column:last_send_error"`
	CreatedAt     time.Time     `json:"createdAt"     gorm:"column:created_at"`

	Headers []WebhookHeader `json:"headers" gorm:"-"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

func (w *Webhook) BeforeSave(_ *gorm.DB) error {
	if len(w.Headers) > 0 {
		data, err := json.Marshal(w.Headers)
		if err != nil {
			return err
		}

		w.HeadersJSON = string(data)
	} else {
		w.HeadersJSON = "[]"
	}

	return nil
}

func (w *Webhook) AfterFind(_ *gorm.DB) error {
	if w.HeadersJSON != "" {
		if err := json.Unmarshal([]byte(w.HeadersJSON), &w.Headers); err != nil {
			return err
		}
	}

	return nil
}

func (w *Webhook) Validate() error {
	if w.Name == "" {
		return errors.New("webhook name is required")
	}

	if w.URL == "" {
		return errors.New("webhook URL is required")
	}

	if w.Method != WebhookMethodGET && w.Method != WebhookMethodPOST {
		return fmt.Errorf("unsupported webhook method: %s", w.Method)
	}

	return nil
}

// Send delivers a change event. GET subscribers receive the intent as a
// query parameter, POST subscribers the full JSON payload.
func (w *Webhook) Send(logger *slog.Logger, intent string, payload []byte) error {
	var err error
	switch w.Method {
	case WebhookMethodGET:
		err = w.sendGET(logger, intent)
	case WebhookMethodPOST:
		err = w.sendPOST(logger, payload)
	default:
		err = fmt.Errorf("unsupported webhook method: %s", w.Method)
	}

	if err != nil {
		lastSendError := err.Error()
		w.LastSendError = &lastSendError
	} else {
		w.LastSendError = nil
	}

	return err
}

func (w *Webhook) sendGET(logger *slog.Logger, intent string) error {
	reqURL := fmt.Sprintf("%s?intent=%s", w.URL, url.QueryEscape(intent))

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}

	w.applyHeaders(req)

	return w.doRequest(logger, req, "GET")
}

func (w *Webhook) sendPOST(logger *slog.Logger, payload []byte) error {
	req, err := http.NewRequest(http.MethodPost, w.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create POST request: %w", err)
	}

	hasContentType := false
	for _, h := range w.Headers {
		if strings.EqualFold(h.Key, "Content-Type") {
			hasContentType = true
			break
		}
	}
	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}

	w.applyHeaders(req)

	return w.doRequest(logger, req, "POST")
}

func (w *Webhook) doRequest(logger *slog.Logger, req *http.Request, method string) error {
	client := &http.Client{Timeout: 15 * time.Second}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s webhook: %w", method, err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook %s returned status: %s, body: %s", method, resp.Status, body)
	}

	return nil
}

func (w *Webhook) applyHeaders(req *http.Request) {
	for _, h := range w.Headers {
		if h.Key != "" {
			req.Header.Set(h.Key, h.Value)
		}
	}
}
