// AngelaMos | 2026
// minio.go

package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bazario/bazario-api/internal/config"
)

// PhotoObject identifies one stored photo: the bucket object name for later
// deletion and the public URL persisted on the listing_photos row.
type PhotoObject struct {
	ObjectName string
	URL        string
}

// Store is the photo storage collaborator. The listing engine only depends
// on this interface; everything past the returned URL is out of its hands.
type Store interface {
	UploadPhoto(
		ctx context.Context,
		listingID, fileName string,
		file io.Reader,
		size int64,
	) (PhotoObject, error)
	DeletePhoto(ctx context.Context, objectName string) error
}

type MinioStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewMinioStore(
	ctx context.Context,
	cfg config.StorageConfig,
) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	store := &MinioStore{client: client, cfg: cfg}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}

	if !exists {
		err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{
			Region: s.cfg.Region,
		})
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}

	return nil
}

func (s *MinioStore) UploadPhoto(
	ctx context.Context,
	listingID, fileName string,
	file io.Reader,
	size int64,
) (PhotoObject, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("listings/%s/%d/%02d/%s%s",
		listingID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext,
	)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"listing-id":        listingID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return PhotoObject{}, fmt.Errorf("upload photo: %w", err)
	}

	return PhotoObject{
		ObjectName: objectName,
		URL:        s.publicURL(objectName),
	}, nil
}

func (s *MinioStore) DeletePhoto(
	ctx context.Context,
	objectName string,
) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	return nil
}

func (s *MinioStore) publicURL(objectName string) string {
	base := s.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, s.cfg.Endpoint)
	}

	return fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(base, "/"),
		s.cfg.Bucket,
		objectName,
	)
}
