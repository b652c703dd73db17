package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

// fakeClient records archive operations in memory.
type fakeClient struct {
	buckets map[string]bool
	objects map[string][]byte
	failPut bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		buckets: make(map[string]bool),
		objects: make(map[string][]byte),
	}
}

func (c *fakeClient) BucketExists(_ context.Context, bucketName string) (bool, error) {
	return c.buckets[bucketName], nil
}

func (c *fakeClient) MakeBucket(_ context.Context, bucketName string, _ minio.MakeBucketOptions) error {
	c.buckets[bucketName] = true
	return nil
}

func (c *fakeClient) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if c.failPut {
		return minio.UploadInfo{}, assert.AnError
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	c.objects[bucketName+"/"+objectName] = data
	return minio.UploadInfo{Bucket: bucketName, Key: objectName}, nil
}

func TestArchiveKey(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	key := ArchiveKey("run-1", "/tmp/out/delete_results.xlsx", now)
	assert.Equal(t, "results/2026-08-30/run-1-delete_results.xlsx", key)
}

func TestUpload_CreatesBucketAndStoresWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	assert.NoError(t, os.WriteFile(path, []byte("workbook-bytes"), 0o644))

	client := newFakeClient()
	cfg := Config{Bucket: "dcv-results"}

	key, err := Upload(context.Background(), client, cfg, "run-42", path)
	assert.NoError(t, err)
	assert.True(t, client.buckets["dcv-results"])
	assert.Equal(t, []byte("workbook-bytes"), client.objects["dcv-results/"+key])
}

func TestUpload_MissingWorkbook(t *testing.T) {
	client := newFakeClient()
	_, err := Upload(context.Background(), client, Config{Bucket: "b"}, "run", filepath.Join(t.TempDir(), "gone.xlsx"))
	assert.Error(t, err)
}

func TestUpload_PutFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	client := newFakeClient()
	client.failPut = true

	_, err := Upload(context.Background(), client, Config{Bucket: "b"}, "run", path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload workbook")
}
