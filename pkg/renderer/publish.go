package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Options configures an S3-compatible object store
type S3Options struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS itself
	Region    string
	Bucket    string
	CDNURL    string // Public base URL for uploaded objects, optional
}

// S3Publisher uploads rendered images to an S3 bucket
type S3Publisher struct {
	client  s3iface.S3API
	bucket  string
	cdnURL  string
	timeout time.Duration
	logger  core.Logger
}

// NewS3Publisher creates a publisher with static credentials and path-style
// addressing, which S3-compatible stores require
func NewS3Publisher(opts S3Options, logger core.Logger) (*S3Publisher, error) {
	if opts.Bucket == "" {
		return nil, errors.New("S3 bucket is not configured")
	}

	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, ""),
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		config.Endpoint = aws.String(opts.Endpoint)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), opts.Bucket, opts.CDNURL, logger), nil
}

// NewS3PublisherWithClient wraps an existing S3 client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, cdnURL string, logger core.Logger) *S3Publisher {
	return &S3Publisher{
		client:  client,
		bucket:  bucket,
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		timeout: UploadTimeout,
		logger:  logger,
	}
}

// Publish PNG-encodes img, uploads it under key and returns its public URL
func (p *S3Publisher) Publish(ctx context.Context, key string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	data := buf.Bytes()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	}
	return p.URL(key), nil
}

// URL returns where an uploaded key can be fetched from
func (p *S3Publisher) URL(key string) string {
	if p.cdnURL != "" {
		return p.cdnURL + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", p.bucket, key)
}
