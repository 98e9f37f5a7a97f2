package blob

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"content-portal/internal/config"
	"content-portal/pkg/cache"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// StorageHostMarker identifies object-storage URLs embedded in section data.
// Stored signed URLs carry this host and must be re-resolved before fetching.
const StorageHostMarker = "amazonaws.com"

// Store wraps the portal's S3 bucket: uploaded images and other client assets
// live under users/{uid}/<category>/<filename>.
type Store struct {
	bucketName string
	urlExpiry  time.Duration
	svc        *s3.S3
}

// NewStore creates a Store for the configured bucket.
func NewStore(cfg *config.Config) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Store{
		bucketName: cfg.AWS.BucketName,
		urlExpiry:  cfg.Export.PresignedURLExpiry,
		svc:        s3.New(sess),
	}, nil
}

// Upload writes one object.
func (s *Store) Upload(src io.Reader, objectKey, contentType string) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read upload body: %w", err)
	}

	_, err = s.svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return nil
}

// Download fetches an object's bytes and content type.
func (s *Store) Download(objectKey string) ([]byte, string, error) {
	result, err := s.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object %s: %w", objectKey, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read object %s: %w", objectKey, err)
	}

	contentType := ""
	if result.ContentType != nil {
		contentType = *result.ContentType
	}

	return data, contentType, nil
}

// SignedURL returns a download URL for the object, reusing a cached one while
// it is still valid.
func (s *Store) SignedURL(objectKey string, urlCache *cache.URLCache) (string, error) {
	if url, found := urlCache.Get(objectKey); found {
		return url, nil
	}

	downloadURL, err := s.FreshSignedURL(objectKey)
	if err != nil {
		return "", err
	}

	urlCache.Set(objectKey, downloadURL, time.Now().Add(s.urlExpiry))
	return downloadURL, nil
}

// FreshSignedURL always issues a new signed URL. Archive building uses this:
// URLs stored in section data may have expired, so each fetch re-resolves.
func (s *Store) FreshSignedURL(objectKey string) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})

	downloadURL, err := req.Presign(s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", objectKey, err)
	}

	return downloadURL, nil
}

// Delete removes an object.
func (s *Store) Delete(objectKey string) error {
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectKey, err)
	}

	return nil
}

// BuildObjectKey constructs the object key by combining folder path and filename
func BuildObjectKey(folderPath, filename string) string {
	if folderPath == "" {
		return filename
	}
	if strings.HasSuffix(folderPath, "/") {
		return folderPath + filename
	}
	return folderPath + "/" + filename
}

// IsStorageURL reports whether raw points at the object store.
func IsStorageURL(raw string) bool {
	return strings.Contains(raw, StorageHostMarker)
}

// ObjectKeyFromURL extracts the object key from a (possibly expired) signed
// storage URL so a fresh URL can be issued for the same object.
func ObjectKeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid storage URL: %w", err)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}
	if key == "" {
		return "", fmt.Errorf("storage URL has no object key: %s", raw)
	}

	return key, nil
}
