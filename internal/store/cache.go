package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
)

const (
	publicKeyPrefix     = "widget:public:"
	generationKeyPrefix = "widget:gen:"

	// generationTTL only has to outlive a single read-through.
	generationTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("cache generation changed")

// NewRedis parses url, connects and pings before returning the client.
func NewRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// publicCache holds the public projection of widgets so the embed script's
// lookups skip the document store. Every invalidation bumps a per-widget
// generation; a read-through fill is only written while the generation it
// started from is still current, so a projection read before an update or
// delete can never land after it.
type publicCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPublicCache(client *redis.Client, ttl time.Duration) *publicCache {
	return &publicCache{client: client, ttl: ttl}
}

func publicKey(widgetID string) string     { return publicKeyPrefix + widgetID }
func generationKey(widgetID string) string { return generationKeyPrefix + widgetID }

// Get returns the cached widget, nil on a miss, and the generation a later
// Set must present.
func (c *publicCache) Get(ctx context.Context, widgetID string) (*dto.PublicWidget, int64, error) {
	vals, err := c.client.MGet(ctx, publicKey(widgetID), generationKey(widgetID)).Result()
	if err != nil {
		return nil, 0, errs.NewExternalServiceError("redis", "failed to read cached widget", true, err)
	}

	var gen int64
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, errs.NewExternalServiceError("redis", "failed to parse cache generation", false, err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}
	var w dto.PublicWidget
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, gen, errs.NewExternalServiceError("redis", "failed to parse cached widget", false, err)
	}
	return &w, gen, nil
}

// Set stores w unless the widget was invalidated since gen was read. A
// skipped write is not an error.
func (c *publicCache) Set(ctx context.Context, w *dto.PublicWidget, gen int64) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	genKey := generationKey(w.WidgetID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, publicKey(w.WidgetID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return errs.NewExternalServiceError("redis", "failed to cache widget", true, err)
	}
}

// Invalidate drops the cached entry and bumps the generation in one
// transaction.
func (c *publicCache) Invalidate(ctx context.Context, widgetID string) error {
	genKey := generationKey(widgetID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, publicKey(widgetID))
		return nil
	})
	if err != nil {
		return errs.NewExternalServiceError("redis", "failed to invalidate cached widget", true, err)
	}
	return nil
}
