package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"audiosense/internal/app/config"
)

// ArchiveStore keeps the source audio and the produced transcript in object
// storage after a successful run.
type ArchiveStore struct {
	client *minio.Client
	bucket string
}

// NewArchiveStore creates an ArchiveStore from archive configuration.
func NewArchiveStore(cfg config.ArchiveConfig) (*ArchiveStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &ArchiveStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *ArchiveStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ArchiveAudio uploads the source audio and returns its object key.
func (s *ArchiveStore) ArchiveAudio(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := objectKey("audio", filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive audio: %w", err)
	}
	return key, nil
}

// ArchiveTranscript uploads the joined transcript text next to the audio and
// returns its object key.
func (s *ArchiveStore) ArchiveTranscript(ctx context.Context, filename string, text string) (string, error) {
	key := objectKey("transcripts", strings.TrimSuffix(filename, filepath.Ext(filename))+".txt")

	_, err := s.client.PutObject(ctx, s.bucket, key, strings.NewReader(text), int64(len(text)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return "", fmt.Errorf("failed to archive transcript: %w", err)
	}
	return key, nil
}

// objectKey builds a collision-free key: prefix/date/uuid-filename.
func objectKey(prefix, filename string) string {
	if filename == "" {
		filename = "unnamed"
	}
	return fmt.Sprintf("%s/%s/%s-%s",
		prefix,
		time.Now().UTC().Format("2006-01-02"),
		uuid.New().String(),
		filepath.Base(filename))
}
