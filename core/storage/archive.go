package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ArchiveKey builds the object key a run's workbook is stored under.
// Layout: results/<yyyy-mm-dd>/<runID>-<filename>.
func ArchiveKey(runID, localPath string, now time.Time) string {
	return fmt.Sprintf("results/%s/%s-%s", now.Format("2006-01-02"), runID, filepath.Base(localPath))
}

// Upload archives a results workbook and returns the object key it was
// stored under. The bucket is created on first use.
func Upload(ctx context.Context, client Client, cfg Config, runID, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook for archiving: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat workbook: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check archive bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return "", fmt.Errorf("failed to create archive bucket %s: %w", cfg.Bucket, err)
		}
	}

	key := ArchiveKey(runID, localPath, time.Now())
	_, err = client.PutObject(ctx, cfg.Bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: workbookContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload workbook to %s/%s: %w", cfg.Bucket, key, err)
	}

	return key, nil
}
