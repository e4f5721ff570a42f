// Package objectstore renders document snapshots and stores the artifacts in
// an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	keyPrefix   = "bols/"
	contentType = "application/json"
)

// objectStore is the part of *minio.Client the renderer uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// Renderer implements ports.DocumentRenderer. The artifact is the snapshot
// as indented JSON under bols/<number>.json; re-rendering overwrites it.
//
// The bucket is prepared on first use and again after every failed attempt,
// so an object store that is down at startup only delays rendering.
type Renderer struct {
	client objectStore
	bucket string

	mu    sync.Mutex
	ready bool
}

func NewRenderer(client objectStore, bucket string) (*Renderer, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	return &Renderer{client: client, bucket: bucket}, nil
}

// Render stores the snapshot and returns its storage key.
func (r *Renderer) Render(ctx context.Context, snapshot bol.Snapshot) (string, error) {
	if snapshot.Number == "" {
		return "", errs.NewValueIsRequiredError("snapshot number")
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", snapshot.Number, err)
	}

	if err = r.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("prepare bucket %s: %w", r.bucket, err)
	}

	key := ObjectKey(snapshot.Number)
	if _, err = r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"bol-number": snapshot.Number,
		},
	}); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}

	return key, nil
}

// ObjectKey is the storage key of a rendered document.
func ObjectKey(number string) string {
	return keyPrefix + number + ".json"
}

// NewClient connects to MinIO with static credentials.
func NewClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

// EnsureBucket creates the bucket if it does not exist yet. Once it
// succeeds later calls return at once.
func (r *Renderer) EnsureBucket(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return nil
	}

	found, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return err
	}
	if !found {
		if err = r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	r.ready = true
	return nil
}
