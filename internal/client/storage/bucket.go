package storageclient

import (
	"context"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// BucketAdapter hosts images in a Cloud Storage bucket through the Firebase
// app's storage client. Objects are served from the public GCS endpoint.
type BucketAdapter struct {
	bucket *gcs.BucketHandle
	name   string
}

func NewBucketAdapter(ctx context.Context, app *firebase.App, bucket string) (*BucketAdapter, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase storage: %w", err)
	}
	handle, err := client.Bucket(bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket %s: %w", bucket, err)
	}
	return &BucketAdapter{bucket: handle, name: bucket}, nil
}

func (a *BucketAdapter) Put(ctx context.Context, object, contentType string, data []byte) (string, error) {
	w := a.bucket.Object(object).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return a.URL(object), nil
}

func (a *BucketAdapter) URL(object string) string {
	u := url.URL{Scheme: "https", Host: "storage.googleapis.com", Path: "/" + a.name + "/" + object}
	return u.String()
}
