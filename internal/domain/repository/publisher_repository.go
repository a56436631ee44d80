package repository

import "context"

// PublisherRepository delivers generated reports to remote storage.
type PublisherRepository interface {
	GetAccountID(ctx context.Context, profile string) (string, error)
	Publish(ctx context.Context, profile, bucket, key string, data []byte, contentType string) (string, error)
}
