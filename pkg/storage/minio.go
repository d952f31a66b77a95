package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// ObjectStore adalah kontrak object storage yang dipakai service layer,
// dipisah supaya bisa di-fake saat test.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, error)
	Remove(ctx context.Context, objectName string) error
	PresignedPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// ObjectStorage membungkus klien MinIO untuk satu bucket.
type ObjectStorage struct {
	client *minio.Client
	bucket string
}

var _ ObjectStore = (*ObjectStorage)(nil)

// NewObjectStorage menginisialisasi klien dan memastikan bucket ada.
func NewObjectStorage(ctx context.Context, cfg MinioConfig) (*ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}
	}

	return &ObjectStorage{
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

func (s *ObjectStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *ObjectStorage) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject malas: objek yang tidak ada baru ketahuan di Read pertama.
	// Stat dipaksa di sini supaya storage_path salah gagal sebagai error
	// download, bukan tersamar jadi kegagalan ekstraksi.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("stat object %s: %w", objectName, err)
	}
	return obj, nil
}

func (s *ObjectStorage) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// PresignedPutURL memberi client URL upload langsung tanpa lewat API server.
func (s *ObjectStorage) PresignedPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, expiry)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

func (s *ObjectStorage) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
