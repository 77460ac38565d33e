// Package docstore uploads document bytes to S3. One PutObject per
// document; failures are returned to the caller with no retry and no
// partial-upload cleanup.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/docsight/backend/internal/models"
)

// s3API is the slice of the S3 client the uploader needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores documents in a fixed bucket.
type Uploader interface {
	Upload(ctx context.Context, doc models.Document, key string) (models.ObjectRef, error)
}

// S3Uploader implements Uploader against S3.
type S3Uploader struct {
	client s3API
	bucket string
}

// NewS3Uploader creates an uploader bound to the configured bucket.
func NewS3Uploader(client *s3.Client, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

func newS3Uploader(client s3API, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// Upload performs a single PutObject call and returns the stored
// object reference.
func (u *S3Uploader) Upload(ctx context.Context, doc models.Document, key string) (models.ObjectRef, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(doc.Bytes),
	}
	if doc.ContentType != "" {
		input.ContentType = aws.String(doc.ContentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return models.ObjectRef{}, fmt.Errorf("uploading to s3://%s/%s: %w", u.bucket, key, err)
	}

	return models.ObjectRef{Bucket: u.bucket, Key: key}, nil
}

// ObjectKey builds the storage key for an upload at the given time:
// uploads/{YYYYMMDD_HHMMSS}.{ext}. Second granularity means two
// uploads in the same second with the same extension collide; kept
// as-is, see DESIGN.md.
func ObjectKey(now time.Time, ext string) string {
	return fmt.Sprintf("uploads/%s.%s", now.Format("20060102_150405"), ext)
}
