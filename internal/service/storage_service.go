package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores lesson media either on local disk or in a MinIO
// bucket, selected by configuration.
type StorageService struct {
	cfg    config.StorageConfig
	client *minio.Client
}

func NewStorageService(cfg config.StorageConfig) (*StorageService, error) {
	s := &StorageService{cfg: cfg}

	switch cfg.Type {
	case "local", "":
	case "minio":
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		s.client = client
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}

	return s, nil
}

// UploadFile stores the file at localPath under objectName and returns the
// URL it is served from.
func (s *StorageService) UploadFile(ctx context.Context, objectName, localPath, contentType string) (string, error) {
	if s.client == nil {
		return s.uploadLocal(objectName, localPath)
	}

	_, err := s.client.FPutObject(ctx, s.cfg.MinioBucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload: %w", err)
	}
	return fmt.Sprintf("/%s/%s", s.cfg.MinioBucket, objectName), nil
}

func (s *StorageService) uploadLocal(objectName, localPath string) (string, error) {
	dst := filepath.Join(s.cfg.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return "/uploads/" + objectName, nil
}

// RemoveFile deletes a stored object. Missing objects are not an error.
func (s *StorageService) RemoveFile(ctx context.Context, objectName string) error {
	if s.client == nil {
		err := os.Remove(filepath.Join(s.cfg.LocalPath, objectName))
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return s.client.RemoveObject(ctx, s.cfg.MinioBucket, objectName, minio.RemoveObjectOptions{})
}
