package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	storageclient "github.com/GregMSThompson/chat-widget/internal/client/storage"
	"github.com/GregMSThompson/chat-widget/internal/config"
	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/internal/store"
	"github.com/GregMSThompson/chat-widget/pkg/logger"
)

// WidgetStore is implemented by the Firestore and SQLite stores.
type WidgetStore interface {
	Create(ctx context.Context, w *models.Widget) error
	Get(ctx context.Context, widgetID string) (*models.Widget, error)
	List(ctx context.Context, limit int) ([]*models.Widget, error)
	Update(ctx context.Context, w *models.Widget) error
	Delete(ctx context.Context, widgetID string) error
}

type PublicCache interface {
	Get(ctx context.Context, widgetID string) (*dto.PublicWidget, int64, error)
	Set(ctx context.Context, w *dto.PublicWidget, gen int64) error
	Invalidate(ctx context.Context, widgetID string) error
}

type ImageHost interface {
	Put(ctx context.Context, object, contentType string, data []byte) (string, error)
}

// Bootstrap owns every long-lived client. Optional parts stay nil when they
// are not configured.
type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *firebase.App
	Redis     *redis.Client

	Store     WidgetStore
	Cache     PublicCache
	Images    ImageHost
	UploadDir string

	closers []func() error
}

// Run builds the logger first so callers can report a failed bootstrap
// through bs.Log even when err is non-nil.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.ForFormat(cfg.LogFormat))

	if err = bs.initStore(applicationCtx, cfg); err != nil {
		return bs, err
	}

	if cfg.RedisURL != "" {
		bs.Redis, err = store.NewRedis(applicationCtx, cfg.RedisURL)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, bs.Redis.Close)
		bs.Cache = store.NewPublicCache(bs.Redis, cfg.CacheTTL)
	}

	if err = bs.initImages(applicationCtx, cfg); err != nil {
		return bs, err
	}

	bs.Log.Info("bootstrap complete",
		"env", cfg.Env,
		"store", cfg.StoreDriver,
		"cache", bs.Cache != nil,
		"images", bs.Images != nil,
	)
	return bs, nil
}

func (bs *Bootstrap) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		client, err := InitFirestore(ctx, cfg.ProjectID)
		if err != nil {
			return fmt.Errorf("firestore: %w", err)
		}
		bs.Firestore = client
		bs.closers = append(bs.closers, client.Close)
		bs.Store = store.NewWidgetStore(client, cfg.WidgetCollection)
	case config.StoreSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		bs.closers = append(bs.closers, s.Close)
		bs.Store = s
	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return nil
}

func (bs *Bootstrap) initImages(ctx context.Context, cfg *config.Config) error {
	switch {
	case cfg.UploadBucket != "":
		app, err := InitFirebase(ctx, cfg.ProjectID)
		if err != nil {
			return fmt.Errorf("firebase: %w", err)
		}
		bs.Firebase = app
		host, err := storageclient.NewBucketAdapter(ctx, app, cfg.UploadBucket)
		if err != nil {
			return err
		}
		bs.Images = host
	case cfg.UploadDir != "":
		host, err := storageclient.NewDiskAdapter(cfg.UploadDir, cfg.PublicURL)
		if err != nil {
			return err
		}
		bs.Images = host
		bs.UploadDir = host.Root()
	default:
		bs.Log.Warn("no image host configured, profile uploads are disabled")
	}
	return nil
}

// Close releases clients in reverse order of creation.
func (bs *Bootstrap) Close() error {
	var errList []error
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	bs.closers = nil
	return errors.Join(errList...)
}
