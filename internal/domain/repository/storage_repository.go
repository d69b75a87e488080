package repository

import "context"

// StorageRepository persists report artifacts to object storage.
type StorageRepository interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}
