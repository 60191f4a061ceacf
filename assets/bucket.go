// Package assets wraps the Cloud Storage bucket used for hosted project
// images. Objects live under projects/{projectId}/{filename} and are served
// from their public URL.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/alexvr/portfolio-backend/errs"
)

const storageHost = "https://storage.googleapis.com"

// Bucket is a thin wrapper over a Cloud Storage bucket handle.
type Bucket struct {
	name   string
	handle *storage.BucketHandle
}

func NewBucket(name string, handle *storage.BucketHandle) *Bucket {
	return &Bucket{name: name, handle: handle}
}

// Put writes data under key and returns the publicly fetchable URL.
func (b *Bucket) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		w.Close()
		return "", errs.NewStoreErr("put", "storage", err)
	}
	if err := w.Close(); err != nil {
		return "", errs.NewStoreErr("put", "storage", err)
	}

	return fmt.Sprintf("%s/%s/%s", storageHost, b.name, key), nil
}

// DeletePrefix removes every object stored under prefix. Used to clean up a
// project's images when the project itself is deleted.
func (b *Bucket) DeletePrefix(ctx context.Context, prefix string) error {
	it := b.handle.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errs.NewStoreErr("delete prefix", "storage", err)
		}

		if err := b.handle.Object(attrs.Name).Delete(ctx); err != nil &&
			!errors.Is(err, storage.ErrObjectNotExist) {
			return errs.NewStoreErr("delete prefix", "storage", err)
		}
	}
	return nil
}
