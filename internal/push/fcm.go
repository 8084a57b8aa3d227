package push

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/oomool/backend/pkg/logger"
)

// MessagingClient is the subset of *messaging.Client used here.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMGateway sends directly through the Firebase Admin SDK.
type FCMGateway struct {
	client  MessagingClient
	timeout time.Duration
}

func NewFCMGateway(client MessagingClient, timeout time.Duration) *FCMGateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &FCMGateway{client: client, timeout: timeout}
}

func (g *FCMGateway) Send(ctx context.Context, token, title, body string, data map[string]string) {
	if g.client == nil || token == "" {
		return
	}

	badge := 1
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	log := logger.FromContext(ctx).With("component", "push", "gateway", "fcm")
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	id, err := g.client.Send(ctx, msg)
	if err != nil {
		log.Warn("fcm send failed", "error", err)
		return
	}
	log.Debug("fcm message sent", "message_id", id)
}
