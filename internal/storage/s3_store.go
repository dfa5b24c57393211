package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/quizforge/quiz-service/internal/store"
)

// MaxImageSize caps uploads at 5MB.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrInvalidImageType = errors.New("invalid file type: only JPEG, PNG, GIF and WebP images are allowed")
	ErrImageTooLarge    = errors.New("file size exceeds the maximum allowed (5MB)")
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// S3BlobStore stores question images in an S3 bucket under unique keys.
type S3BlobStore struct {
	client *s3.S3
	bucket string
	region string
}

func NewS3BlobStore(sess *session.Session, bucket, region string) store.BlobStore {
	return &S3BlobStore{
		client: s3.New(sess),
		bucket: bucket,
		region: region,
	}
}

func (s *S3BlobStore) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, string, error) {
	if !validImageTypes[strings.ToLower(contentType)] {
		return "", "", ErrInvalidImageType
	}
	if len(data) > MaxImageSize {
		return "", "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("questions/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ACL:           aws.String("public-read"),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}

	return s.PublicURL(key), key, nil
}

func (s *S3BlobStore) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	objects := make([]*s3.ObjectIdentifier, len(paths))
	for i, p := range paths {
		objects[i] = &s3.ObjectIdentifier{Key: aws.String(p)}
	}
	_, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("failed to remove images: %w", err)
	}
	return nil
}

func (s *S3BlobStore) PublicURL(path string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path)
}
