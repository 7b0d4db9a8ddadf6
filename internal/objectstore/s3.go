// Package objectstore issues pre-signed upload URLs for an S3-compatible
// object store and composes public object URLs.
package objectstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sfsergim/CivicReport/internal/utils"
)

// Presigner issues pre-signed upload URLs
type Presigner interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PublicURL(key string) string
}

// Options configures the S3 presigner
type Options struct {
	ServiceURL    string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicURLBase string
}

// S3Presigner presigns PUT requests with static credentials against a
// path-style endpoint, which is what MinIO expects.
type S3Presigner struct {
	presign       *s3.PresignClient
	bucket        string
	publicURLBase string
}

// NewS3Presigner builds a presigner. Presigning is local, so no request is
// sent to the store here.
func NewS3Presigner(ctx context.Context, opts Options) (*S3Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.ServiceURL != "" {
			o.BaseEndpoint = aws.String(opts.ServiceURL)
		}
		o.UsePathStyle = true
	})

	return &S3Presigner{
		presign:       s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		publicURLBase: opts.PublicURLBase,
	}, nil
}

// PresignUpload returns a URL allowing a PUT of key with contentType until ttl elapses
func (p *S3Presigner) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	ctx, span, done := utils.TraceStorageOperation(ctx, "presign_put", p.bucket)
	defer done()

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"storage.key": key})
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, nil
}

// PublicURL returns the public address of key
func (p *S3Presigner) PublicURL(key string) string {
	return PublicURL(p.publicURLBase, p.bucket, key)
}

// PublicURL joins base, bucket and key. Trailing slashes on base are dropped;
// the key is used verbatim.
func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

var _ Presigner = (*S3Presigner)(nil)
