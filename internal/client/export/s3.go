// Package export writes JSON snapshots of the user list to S3-compatible
// object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/racfadmin/internal/client/config"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// ErrNoBucket is returned when export is attempted without a bucket.
var ErrNoBucket = errors.New("export bucket is not configured")

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// Putter is the slice of *s3.Client the exporter needs.
type Putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Lister supplies the records to export.
type Lister interface {
	List(ctx context.Context) ([]models.UserRecord, error)
}

// Snapshot is the document stored in the bucket.
type Snapshot struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Count      int                 `json:"count"`
	Users      []models.UserRecord `json:"users"`
}

// NewS3Client builds a client for cfg. Static keys are used when both are
// set; otherwise the default AWS credential chain applies. A custom endpoint
// (MinIO and friends) switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Exporter uploads the current user list as one JSON object.
type Exporter struct {
	users  Lister
	s3     Putter
	bucket string
	prefix string
	now    func() time.Time
}

func NewExporter(users Lister, s3 Putter, bucket, prefix string) *Exporter {
	return &Exporter{users: users, s3: s3, bucket: bucket, prefix: prefix, now: time.Now}
}

// Export uploads a snapshot and returns its object key and record count.
func (e *Exporter) Export(ctx context.Context) (string, int, error) {
	if e.bucket == "" {
		return "", 0, ErrNoBucket
	}

	list, err := e.users.List(ctx)
	if err != nil {
		return "", 0, err
	}

	now := e.now().UTC()
	body, err := json.MarshalIndent(Snapshot{ExportedAt: now, Count: len(list), Users: list}, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("encode snapshot: %w", err)
	}

	key := e.prefix + "users-" + now.Format("20060102T150405Z") + ".json"
	_, err = e.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", 0, fmt.Errorf("upload snapshot: %w", err)
	}
	return key, len(list), nil
}
