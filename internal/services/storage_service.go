// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/yycy134679/school-secondhand-trading-system/internal/config"
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StorageService stores uploaded files on S3 when configured and on local
// disk otherwise.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if !cfg.Upload.UseS3 || cfg.AWS.AccessKeyID == "" {
		// Local disk storage for development
		if err := os.MkdirAll(cfg.Upload.LocalDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
		return &StorageService{config: cfg}, nil
	}

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

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// SaveImage validates and stores one uploaded image, returning its public
// URL.
func (s *StorageService) SaveImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	maxSize := int64(s.config.Upload.MaxSizeMB) * 1024 * 1024
	if header.Size > maxSize {
		return "", invalidParams(i18n.KeyUploadTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range imageExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", invalidParams(i18n.KeyUploadBadType)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	filename := s.generateFileName(header.Filename)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, filename, header.Header.Get("Content-Type"))
	}
	return s.uploadToLocal(fileBytes, filename)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, filename string) (string, error) {
	path := filepath.Join(s.config.Upload.LocalDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.config.Upload.PublicPrefix + "/" + filename, nil
}

func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		return os.Remove(filepath.Join(s.config.Upload.LocalDir, key))
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// DeleteByURL removes a stored file given its public URL. URLs that do not
// point into this service's storage are ignored.
func (s *StorageService) DeleteByURL(url string) error {
	if s.s3Client == nil {
		prefix := s.config.Upload.PublicPrefix + "/"
		if strings.HasPrefix(url, prefix) {
			return s.DeleteFile(strings.TrimPrefix(url, prefix))
		}
		return nil
	}
	if idx := strings.Index(url, "/products/"); idx >= 0 {
		return s.DeleteFile(url[idx+1:])
	}
	return nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func (s *StorageService) generateFileName(originalName string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("products/%s_%s%s", timestamp, id.String()[:8], ext)
}
