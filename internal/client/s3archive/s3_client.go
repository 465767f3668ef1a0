// Package s3archive uploads submission attachments to an S3-compatible
// object store, one folder per submission, and returns per-file links for
// the board. Credentials come from the default AWS chain (env vars or a
// shared credentials file).
package s3archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/buildcore/vendor-intake/internal/models"
)

// objectPutter is the slice of the S3 API the archiver uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Archiver struct {
	client   objectPutter
	bucket   string
	prefix   string
	region   string
	endpoint string
	now      func() time.Time
}

// NewArchiver builds the store client. An endpoint override points at an
// S3-compatible store (e.g. localstack or MinIO) and switches to path-style
// addressing.
func NewArchiver(ctx context.Context, region, endpoint, bucket, prefix string) (*Archiver, error) {
	cfg, err := loadAWSConfig(ctx, region, endpoint)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
		}
	})

	return newArchiver(client, bucket, prefix, region, endpoint, time.Now), nil
}

func newArchiver(client objectPutter, bucket, prefix, region, endpoint string, now func() time.Time) *Archiver {
	return &Archiver{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		region:   region,
		endpoint: endpoint,
		now:      now,
	}
}

// Archive uploads every attachment under the submission's folder. A failing
// file is recorded in its result and never aborts the rest of the batch or
// the parent submission.
func (a *Archiver) Archive(ctx context.Context, vendorName string, files []models.UploadedFile) []models.UploadResult {
	folder := FolderName(vendorName, a.now())
	results := make([]models.UploadResult, 0, len(files))

	for _, file := range files {
		result := models.UploadResult{
			Field:       file.Field,
			DisplayName: DisplayName(file.Field),
			FileName:    file.Filename,
		}

		key := BuildKey(a.prefix, folder, file.Filename)
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(file.Data),
			ContentType: aws.String(file.ContentType),
		})
		if err != nil {
			slog.Error("file archive failed",
				"field", file.Field,
				"file", file.Filename,
				"error", err,
			)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Link = a.objectURL(key)
		result.Success = true
		results = append(results, result)
		slog.Info("file archived", "field", file.Field, "file", file.Filename, "key", key)
	}

	return results
}

// objectURL is the browsable link stored on the board for one object.
func (a *Archiver) objectURL(key string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(a.endpoint, "/"), a.bucket, escapeKey(key))
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, escapeKey(key))
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// loadAWSConfig loads the default AWS configuration, pointing the SDK at a
// custom endpoint when one is configured.
func loadAWSConfig(ctx context.Context, region, endpoint string) (aws.Config, error) {
	if endpoint == "" {
		return awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
	}
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, r string, _ ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			HostnameImmutable: true,
			PartitionID:       "aws",
		}, nil
	})
	return awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region), awsCfg.WithEndpointResolverWithOptions(resolver))
}
