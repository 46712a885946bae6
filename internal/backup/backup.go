// Where: internal/backup/backup.go
// What: Off-host uploads backup to S3.
// Why: The uploads directory is the only state a redeploy cannot recreate.
package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/waspdock/waspdock/internal/config"
)

// S3Client defines the subset of S3 SDK methods used by the uploader.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client constructs an S3 client from the backup configuration.
// Static credentials from the config take precedence over the ambient
// AWS credential chain.
func NewS3Client(ctx context.Context, cfg config.BackupConfig) (S3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Uploader archives a directory and stores it in S3.
type Uploader struct {
	Client S3Client
	Now    func() time.Time
}

// Backup tars and gzips dir, then puts it at
// <prefix>/<app>-<timestamp>.tar.gz in the configured bucket.
// Returns the object key.
func (u Uploader) Backup(ctx context.Context, dir, app string, cfg config.BackupConfig) (string, error) {
	if cfg.Bucket == "" {
		return "", fmt.Errorf("backup bucket is not configured")
	}
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}

	archive, err := archiveDir(dir)
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", dir, err)
	}

	key := fmt.Sprintf("%s/%s-%s.tar.gz", cfg.Prefix, app, now().UTC().Format("20060102-150405"))
	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(archive.Bytes()),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", cfg.Bucket, key, err)
	}
	return key, nil
}

func archiveDir(dir string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(tw, file)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}
