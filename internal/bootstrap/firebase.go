package bootstrap

import (
	"context"

	firebase "firebase.google.com/go/v4"
)

func InitFirebase(ctx context.Context, projectID string) (*firebase.App, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	return firebase.NewApp(ctx, cfg)
}
