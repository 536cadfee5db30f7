package share

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/photojournal/internal/journal/export"
	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/dmitrijs2005/photojournal/internal/netx"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToS3PresignedURL
)

type S3Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
	Prefix       string
	LinkTTL      time.Duration
}

// S3Sharer uploads artifacts through a presigned PUT and hands the user a
// presigned GET link.
type S3Sharer struct {
	cfg      S3Config
	logger   logging.Logger
	announce func(ctx context.Context, url string)
	now      func() time.Time
}

func NewS3Sharer(cfg S3Config, logger logging.Logger, announce func(ctx context.Context, url string)) *S3Sharer {
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = 15 * time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "journal"
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &S3Sharer{cfg: cfg, logger: logger, announce: announce, now: time.Now}
}

func (s *S3Sharer) storageKey(path string) string {
	d := s.now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v%s", s.cfg.Prefix, d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(path))
}

func (s *S3Sharer) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// Share uploads the file at path and returns once the GET link is announced.
func (s *S3Sharer) Share(ctx context.Context, path string, opts export.ShareOptions) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.cfg.Bucket
	key := s.storageKey(path)
	contentType := mimeTypeFor(path, opts)

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.cfg.LinkTTL))
	if err != nil {
		return fmt.Errorf("presign put: %w", err)
	}

	if err := uploadToPresignedURL(ctx, put.URL, body, contentType); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.LinkTTL))
	if err != nil {
		return fmt.Errorf("presign get: %w", err)
	}

	s.logger.Info(ctx, "shared to s3", "bucket", bucket, "key", key, "bytes", len(body), "uti", opts.UTI)
	if s.announce != nil {
		s.announce(ctx, get.URL)
	}
	return nil
}
