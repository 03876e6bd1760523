package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderS3, func(ctx context.Context, cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		s, err := NewStorage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		log.Debug("S3 media store ready", map[string]interface{}{
			"bucket":   cfg.S3.Bucket,
			"endpoint": cfg.S3.Endpoint,
		})
		return s, nil
	})
}

// Storage reads objects from one bucket. audio_path values are
// object keys; a leading slash is ignored.
type Storage struct {
	client *awss3.Client
	bucket string
	prefix string
}

// NewStorage creates an S3 client from cfg.
func NewStorage(ctx context.Context, cfg storage.S3Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	})
	return &Storage{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (s *Storage) key(path string) (string, error) {
	k := strings.TrimLeft(path, "/")
	if k == "" {
		return "", storage.ErrInvalidPath
	}
	if s.prefix != "" {
		k = s.prefix + "/" + k
	}
	return k, nil
}

// mapErr turns missing-object API errors into storage.ErrNotFound.
func mapErr(op, path string, err error) error {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return fmt.Errorf("storage: s3 %s: %w", op, err)
}

// Download opens the object at path.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	key, err := s.key(path)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapErr("download", path, err)
	}
	return out.Body, nil
}

// Stat returns object metadata.
func (s *Storage) Stat(ctx context.Context, path string) (storage.FileInfo, error) {
	key, err := s.key(path)
	if err != nil {
		return storage.FileInfo{}, err
	}
	out, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return storage.FileInfo{}, mapErr("stat", path, err)
	}
	fi := storage.FileInfo{
		Path:        path,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	if out.LastModified != nil {
		fi.LastModified = *out.LastModified
	}
	return fi, nil
}

var _ storage.Storage = (*Storage)(nil)
