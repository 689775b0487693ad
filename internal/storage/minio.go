// Package storage reads and writes resume files and model artifacts in an S3-compatible
// object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/config"
)

// maxObjectBytes bounds a single Get.
const maxObjectBytes = 64 << 20

// ObjectStore is a bucket in a MinIO or S3 server.
type ObjectStore struct {
	client *minio.Client
	bucket string
	region string
}

// New connects to the store described by cfg. It does not touch the bucket.
func New(cfg config.StorageConfig) (*ObjectStore, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("object store endpoint is not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("object store bucket is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &ObjectStore{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// Bucket returns the bucket name.
func (s *ObjectStore) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket when it does not exist.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	log.Info().Str("bucket", s.bucket).Msg("created bucket")
	return nil
}

// Get returns the content of an object.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(io.LimitReader(obj, maxObjectBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if len(data) > maxObjectBytes {
		return nil, fmt.Errorf("object %s exceeds %d bytes", key, maxObjectBytes)
	}
	return data, nil
}

// Put writes data under key.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = ContentType(key)
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	log.Debug().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(data)).Msg("stored object")
	return nil
}

// ResultKey returns the key a parsed record for jobID is stored under.
func ResultKey(jobID string) string {
	return path.Join("results", jobID+".json")
}

// ContentType guesses a content type from the key extension.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
