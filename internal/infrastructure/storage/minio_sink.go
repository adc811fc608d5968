package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

var _ export.Sink = (*MinIOSink)(nil)

// MinIOSink sube los archivos a un bucket S3 compatible.
type MinIOSink struct {
	client *minio.Client
	bucket string
	scheme string
	host   string
}

// NewMinIOSink conecta con MinIO y crea el bucket si no existe.
func NewMinIOSink(ctx context.Context, cfg config.MinIOConfig) (*MinIOSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente minio: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: consultar bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: crear bucket %s: %w", cfg.Bucket, err)
		}
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinIOSink{client: client, bucket: cfg.Bucket, scheme: scheme, host: cfg.Endpoint}, nil
}

// Save sube el objeto y devuelve su URL (sin firmar).
func (s *MinIOSink) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", name, err)
	}
	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.host, s.bucket, name), nil
}
