package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
)

type widgetStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

// NewWidgetStore stores widgets in collection, one document per widget keyed
// by its id.
func NewWidgetStore(client *firestore.Client, collection string) *widgetStore {
	return &widgetStore{
		Client:     client,
		Collection: client.Collection(collection),
	}
}

func (s *widgetStore) Create(ctx context.Context, w *models.Widget) error {
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	_, err := s.Collection.Doc(w.WidgetID).Create(ctx, w)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("widget id already in use")
		}
		return errs.NewDatabaseError("create", "failed to create widget", err)
	}
	return nil
}

func (s *widgetStore) Get(ctx context.Context, widgetID string) (*models.Widget, error) {
	doc, err := s.Collection.Doc(widgetID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("widget not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get widget", err)
	}
	var w models.Widget
	if err := doc.DataTo(&w); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse widget data", err)
	}
	return &w, nil
}

func (s *widgetStore) List(ctx context.Context, limit int) ([]*models.Widget, error) {
	query := s.Collection.OrderBy("updatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*models.Widget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list widgets", err)
		}
		var w models.Widget
		if err := doc.DataTo(&w); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse widget data", err)
		}
		out = append(out, &w)
	}
	return out, nil
}

// Update replaces the mutable fields of an existing widget. The id and
// createdAt are never rewritten.
func (s *widgetStore) Update(ctx context.Context, w *models.Widget) error {
	w.UpdatedAt = time.Now().UTC()
	_, err := s.Collection.Doc(w.WidgetID).Update(ctx, []firestore.Update{
		{Path: "name", Value: w.Name},
		{Path: "platform", Value: w.Platform},
		{Path: "contact", Value: w.Contact},
		{Path: "defaultMessage", Value: w.DefaultMessage},
		{Path: "bubble", Value: w.Bubble},
		{Path: "widget", Value: w.Widget},
		{Path: "updatedAt", Value: w.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("widget not found")
		}
		return errs.NewDatabaseError("update", "failed to update widget", err)
	}
	return nil
}

func (s *widgetStore) Delete(ctx context.Context, widgetID string) error {
	_, err := s.Collection.Doc(widgetID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("widget not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete widget", err)
	}
	return nil
}
