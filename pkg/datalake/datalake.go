// Package datalake is the content-addressed blob cache backing the
// pipeline. Keys fully encode the query that produced the value, and a
// written entry is treated as immutable truth: finished matches and
// historical ladder lookups never change upstream.
package datalake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	appconfig "leaguelake/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrKeyNotFound is returned by Get when the key was never written.
var ErrKeyNotFound = errors.New("datalake: key not found")

// Store is the key to JSON blob contract.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
}

// S3Store is the durable lake implementation.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates the lake client from the configuration.
func NewS3Store(cfg appconfig.LakeConfiguration) *S3Store {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.AccessSecret,
				"",
			),
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
	}
}

// Exists checks whether the key was already written.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("couldn't head %s: %w", key, err)
	}

	return true, nil
}

// Get downloads the blob for the key.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't get %s: %w", key, err)
	}
	defer out.Body.Close()

	blob, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", key, err)
	}

	return blob, nil
}

// Put uploads the blob under the key. Two workers racing on the same
// miss write identical content, so last-write-wins is safe.
func (s *S3Store) Put(ctx context.Context, key string, blob []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(blob),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("couldn't put %s: %w", key, err)
	}

	return nil
}
