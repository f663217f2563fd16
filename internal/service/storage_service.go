package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"prepos_backend/internal/config"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStore 头像等用户文件的存储后端
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// LocalObjectStore 写入本地目录，由 /uploads 静态路由提供访问
type LocalObjectStore struct {
	Root string
}

func (s *LocalObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *LocalObjectStore) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.Root, filepath.FromSlash(key)))
}

func (s *LocalObjectStore) URL(key string) string {
	return "/uploads/" + key
}

type MinioObjectStore struct {
	Bucket string
	Client *minio.Client
}

func NewMinioObjectStore(cfg config.StorageConfig) (*MinioObjectStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioObjectStore{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (s *MinioObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, s.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *MinioObjectStore) Delete(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioObjectStore) URL(key string) string {
	return "/" + s.Bucket + "/" + key
}

// OSSObjectStore 阿里云 OSS
type OSSObjectStore struct {
	Endpoint string
	Bucket   string
	Client   *oss.Client
}

func NewOSSObjectStore(cfg config.StorageConfig) (*OSSObjectStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSObjectStore{Endpoint: cfg.OSSEndpoint, Bucket: cfg.OSSBucket, Client: client}, nil
}

func (s *OSSObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := s.Client.Bucket(s.Bucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(key, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *OSSObjectStore) Delete(ctx context.Context, key string) error {
	bucket, err := s.Client.Bucket(s.Bucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(key)
}

func (s *OSSObjectStore) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.Bucket, s.Endpoint, key)
}

type StorageService struct {
	Store ObjectStore
}

// NewStorageService 远端存储初始化失败时退回本地目录
func NewStorageService(cfg config.StorageConfig) *StorageService {
	var store ObjectStore
	switch cfg.Type {
	case util.StorageMinio:
		s, err := NewMinioObjectStore(cfg)
		if err != nil {
			logger.Log.Warn("MinIO storage unavailable, using local storage", zap.Error(err))
		} else {
			store = s
		}
	case util.StorageOSS:
		s, err := NewOSSObjectStore(cfg)
		if err != nil {
			logger.Log.Warn("OSS storage unavailable, using local storage", zap.Error(err))
		} else {
			store = s
		}
	}

	if store == nil {
		store = &LocalObjectStore{Root: cfg.LocalPath}
	}
	return &StorageService{Store: store}
}

// AvatarKey 每次上传生成新 key，避免 CDN 缓存旧头像
func AvatarKey(uid, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "avatars/" + uid + "/" + uuid.NewString() + ext
}

func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Store.Put(ctx, key, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, key)
}
