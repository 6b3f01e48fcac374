package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// Publisher stores encoded images under a key
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) error
}

// S3Config holds connection settings for an S3-compatible bucket
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty for AWS itself
	AccessKey string
	SecretKey string
	ACL       string // Optional canned ACL, e.g. "public-read"
}

// S3ConfigFromEnv reads RT_S3_BUCKET, RT_S3_REGION, RT_S3_ENDPOINT,
// RT_S3_ACCESS_KEY, RT_S3_SECRET_KEY and RT_S3_ACL
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Bucket:    os.Getenv("RT_S3_BUCKET"),
		Region:    os.Getenv("RT_S3_REGION"),
		Endpoint:  os.Getenv("RT_S3_ENDPOINT"),
		AccessKey: os.Getenv("RT_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("RT_S3_SECRET_KEY"),
		ACL:       os.Getenv("RT_S3_ACL"),
	}
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// putObjectAPI is the part of the S3 client the publisher uses
type putObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads PNG images to an S3 bucket
type S3Publisher struct {
	config S3Config
	client putObjectAPI
	logger core.Logger
}

// NewS3Publisher creates a publisher with a new S3 session
func NewS3Publisher(config S3Config, logger core.Logger) (*S3Publisher, error) {
	if config.Bucket == "" {
		return nil, errors.New("S3 bucket is not configured")
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Publisher(config, s3.New(sess), logger), nil
}

func newS3Publisher(config S3Config, client putObjectAPI, logger core.Logger) *S3Publisher {
	return &S3Publisher{
		config: config,
		client: client,
		logger: logger,
	}
}

// Publish uploads data as an image/png object
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	}
	if p.config.ACL != "" {
		input.ACL = aws.String(p.config.ACL)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, len(data))
	}
	return nil
}
