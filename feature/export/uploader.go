package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"card-ledger/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// DateLayout names the per-run folder.
const DateLayout = "2006-01-02"

// Uploader puts run outputs into a bucket.
type Uploader struct {
	client storage.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewUploader creates an uploader for the configured bucket and prefix.
func NewUploader(client storage.Client, cfg storage.Config, logger *zap.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger,
		now:    time.Now,
	}
}

// ObjectKey is the key a file gets for an expansion run on a date.
func (u *Uploader) ObjectKey(expansion string, at time.Time, file string) string {
	return path.Join(u.prefix, expansion, at.UTC().Format(DateLayout), filepath.Base(file))
}

// UploadRun uploads files and returns their object keys. Missing files are
// skipped with a warning; any upload failure stops the run.
func (u *Uploader) UploadRun(ctx context.Context, expansion string, files ...string) ([]string, error) {
	if err := storage.EnsureBucket(ctx, u.client, u.bucket, u.region); err != nil {
		return nil, err
	}

	at := u.now()
	var keys []string
	for _, file := range files {
		key, err := u.put(ctx, expansion, at, file)
		if os.IsNotExist(err) {
			u.logger.Warn("Run output missing, not uploaded", zap.String("file", file))
			continue
		}
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
		u.logger.Info("Uploaded run output", zap.String("bucket", u.bucket), zap.String("key", key))
	}
	return keys, nil
}

func (u *Uploader) put(ctx context.Context, expansion string, at time.Time, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", file, err)
	}

	key := u.ObjectKey(expansion, at, file)
	_, err = u.client.PutObject(ctx, u.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(file),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Runs lists the run dates stored for an expansion, newest first.
func (u *Uploader) Runs(ctx context.Context, expansion string) ([]string, error) {
	prefix := path.Join(u.prefix, expansion) + "/"
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false}

	var runs []string
	for obj := range u.client.ListObjects(ctx, u.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list runs: %w", obj.Err)
		}
		name := strings.Trim(strings.TrimPrefix(obj.Key, prefix), "/")
		if name != "" {
			runs = append(runs, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(runs)))
	return runs, nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
