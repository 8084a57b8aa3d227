package firebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app with its auth and messaging clients
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	Messaging   *messaging.Client
}

// credentialsOption prefers the base64 service account over the file path.
func credentialsOption(cfg config.PushConfig) (option.ClientOption, error) {
	if cfg.FirebaseBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(cfg.FirebaseBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_BASE64: %w", err)
		}
		return option.WithCredentialsJSON(raw), nil
	}

	if cfg.FirebaseCredentials == "" {
		return nil, fmt.Errorf("firebase credentials not provided")
	}
	if _, err := os.Stat(cfg.FirebaseCredentials); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", cfg.FirebaseCredentials)
	}
	return option.WithCredentialsFile(cfg.FirebaseCredentials), nil
}

// InitFirebase initializes the Firebase app plus its auth and messaging clients
func InitFirebase(ctx context.Context, cfg config.PushConfig) (*App, error) {
	opt, err := credentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	logger.Info("Firebase app initialized")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient, Messaging: messagingClient}, nil
}
