// Package push delivers notifications to devices. Delivery is best effort:
// gateways log failures and never return them to the caller.
package push

import (
	"context"
)

// Data keys carried with every notification push.
const (
	DataType           = "type"
	DataTargetID       = "target_id"
	DataTargetType     = "target_type"
	DataNotificationID = "notification_id"
)

// Gateway sends one push message. An empty token is a no-op.
type Gateway interface {
	Send(ctx context.Context, token, title, body string, data map[string]string)
}

// NoopGateway is used when push delivery is not configured.
type NoopGateway struct{}

func (NoopGateway) Send(context.Context, string, string, string, map[string]string) {}
