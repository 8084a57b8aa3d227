package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/logger"
)

const defaultTimeout = config.MaxPushTimeout

type webhookPayload struct {
	FCMToken string            `json:"fcmToken"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data"`
}

// WebhookGateway posts push requests to an external function that owns the
// FCM credentials.
type WebhookGateway struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookGateway(cfg config.PushConfig) *WebhookGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookGateway{
		url:    cfg.GatewayURL,
		secret: cfg.GatewaySecret,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *WebhookGateway) Send(ctx context.Context, token, title, body string, data map[string]string) {
	if g.url == "" || token == "" {
		return
	}
	log := logger.FromContext(ctx).With("component", "push", "gateway", "webhook")

	payload, err := json.Marshal(webhookPayload{FCMToken: token, Title: title, Body: body, Data: data})
	if err != nil {
		log.Error("failed to encode push payload", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to build push request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if g.secret != "" {
		req.Header.Set("Authorization", "Bearer "+g.secret)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Warn("push request failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("push gateway rejected request", "status", resp.StatusCode, "body", string(snippet))
		return
	}
	log.Debug("push sent", DataNotificationID, data[DataNotificationID])
}
