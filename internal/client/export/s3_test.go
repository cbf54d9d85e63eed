package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/racfadmin/internal/client/config"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

type listerFunc func(ctx context.Context) ([]models.UserRecord, error)

func (f listerFunc) List(ctx context.Context) ([]models.UserRecord, error) { return f(ctx) }

func TestExporter_Export(t *testing.T) {
	recs := models.DefaultUsers(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p := &fakePutter{}
	e := NewExporter(listerFunc(func(context.Context) ([]models.UserRecord, error) { return recs, nil }), p, "snaps", "racf/")
	e.now = func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC) }

	key, n, err := e.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "racf/users-20240203T040506Z.json", key)
	assert.Equal(t, 3, n)

	assert.Equal(t, "snaps", aws.ToString(p.in.Bucket))
	assert.Equal(t, key, aws.ToString(p.in.Key))
	assert.Equal(t, "application/json", aws.ToString(p.in.ContentType))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(p.body, &snap))
	assert.Equal(t, 3, snap.Count)
	assert.Equal(t, "ADMIN01", snap.Users[0].UserID)
}

func TestExporter_NoBucket(t *testing.T) {
	e := NewExporter(nil, &fakePutter{}, "", "")
	_, _, err := e.Export(context.Background())
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestExporter_Errors(t *testing.T) {
	listErr := errors.New("list failed")
	e := NewExporter(listerFunc(func(context.Context) ([]models.UserRecord, error) { return nil, listErr }), &fakePutter{}, "b", "")
	_, _, err := e.Export(context.Background())
	assert.ErrorIs(t, err, listErr)

	putErr := errors.New("access denied")
	e = NewExporter(listerFunc(func(context.Context) ([]models.UserRecord, error) { return nil, nil }), &fakePutter{err: putErr}, "b", "")
	_, _, err = e.Export(context.Background())
	assert.ErrorIs(t, err, putErr)
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	c, err := NewS3Client(context.Background(), config.S3Config{
		Region:          "eu-west-1",
		Endpoint:        "http://minio:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	require.NoError(t, err)

	o := c.Options()
	assert.Equal(t, "eu-west-1", o.Region)
	assert.Equal(t, "http://minio:9000", aws.ToString(o.BaseEndpoint))
	assert.True(t, o.UsePathStyle)

	creds, err := o.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minio", creds.AccessKeyID)
}

func TestNewS3Client_LoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Client(context.Background(), config.S3Config{Region: "x"})
	assert.ErrorContains(t, err, "load-fail")
}
