package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const uploadCacheControl = "max-age=3600"

// ObjectAPI is the part of the S3 client the asset store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner issues time-limited GET URLs.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Options struct {
	BucketName string
	Region     string
	Endpoint   string
	SignedURLs bool
	URLExpiry  time.Duration
	Anonymous  bool
}

// S3Service stores portfolio images under images/ and videos under videos/.
type S3Service struct {
	BucketName string
	Client     ObjectAPI
	Presigner  Presigner

	publicBase string
	signed     bool
	expiry     time.Duration
	logger     *zap.Logger
}

// NewS3Service initializes the S3 service
func NewS3Service(ctx context.Context, opts S3Options, logger *zap.Logger) (*S3Service, error) {
	if opts.BucketName == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.Anonymous {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3ServiceWithClient(client, s3.NewPresignClient(client), opts, logger), nil
}

// NewS3ServiceWithClient builds the service around an existing client.
func NewS3ServiceWithClient(client ObjectAPI, presigner Presigner, opts S3Options, logger *zap.Logger) *S3Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := fmt.Sprintf("https://%s.s3.amazonaws.com", opts.BucketName)
	if opts.Endpoint != "" {
		base = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.BucketName
	}
	expiry := opts.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &S3Service{
		BucketName: opts.BucketName,
		Client:     client,
		Presigner:  presigner,
		publicBase: base,
		signed:     opts.SignedURLs,
		expiry:     expiry,
		logger:     logger,
	}
}

// ObjectKey returns the bucket key of a stored path.
func ObjectKey(path string, kind domain.AssetKind) string {
	return kind.Folder() + "/" + strings.TrimLeft(path, "/")
}

// ResolveURL returns a displayable URL. Absolute URLs pass through untouched.
func (s *S3Service) ResolveURL(ctx context.Context, path string, kind domain.AssetKind) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty %s path", kind)
	}
	if domain.IsAbsoluteURL(path) {
		return path, nil
	}
	key := ObjectKey(path, kind)
	if !s.signed {
		return s.publicBase + "/" + key, nil
	}

	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}
	return req.URL, nil
}

// Upload stores body as name inside the kind's folder and returns the stored path.
// Existing objects are never overwritten.
func (s *S3Service) Upload(ctx context.Context, body io.Reader, name string, contentType string, kind domain.AssetKind) (string, error) {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	key := ObjectKey(name, kind)

	_, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err == nil {
		return "", fmt.Errorf("%s: %w", key, domain.ErrAssetExists)
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return "", fmt.Errorf("failed to check %s: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.BucketName),
		Key:          aws.String(key),
		Body:         body,
		CacheControl: aws.String(uploadCacheControl),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	s.logger.Info("asset uploaded", zap.String("key", key))
	return name, nil
}

// Delete removes a stored asset.
func (s *S3Service) Delete(ctx context.Context, path string, kind domain.AssetKind) error {
	if path == "" || domain.IsAbsoluteURL(path) {
		return fmt.Errorf("cannot delete %q: not a bucket path", path)
	}
	key := ObjectKey(path, kind)
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.logger.Info("asset deleted", zap.String("key", key))
	return nil
}

// ThumbnailPath derives the thumbnail name stored next to an original: a/b.jpg -> a/b_thumb.jpg.
func ThumbnailPath(originalPath string) string {
	dot := strings.LastIndex(originalPath, ".")
	if dot < 0 || dot < strings.LastIndex(originalPath, "/") {
		return originalPath + "_thumb"
	}
	return originalPath[:dot] + "_thumb" + originalPath[dot:]
}
