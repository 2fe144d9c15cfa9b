// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/pdiddy/collab-scan/internal/sweep"
	"github.com/pdiddy/collab-scan/pkg/types"
)

const defaultS3Prefix = "collab-scan"

// Uploader copies finished report files to S3 so runs can be shared without
// shipping local files around.
type Uploader struct {
	client *s3.S3
	bucket string
	prefix string
}

// NewUploader builds an Uploader from the report configuration.
func NewUploader(cfg types.ReportConfig) (*Uploader, error) {
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}

	prefix := cfg.S3Prefix
	if prefix == "" {
		prefix = defaultS3Prefix
	}
	return &Uploader{
		client: s3.New(sess),
		bucket: cfg.S3Bucket,
		prefix: prefix,
	}, nil
}

// Upload puts the report pair under
// <prefix>/<first>_<second>/<timestamp>/<filename>. Upload failures on one
// file do not stop the other; all failures are reported together.
func (u *Uploader) Upload(run sweep.Run, paths []string, w io.Writer) error {
	keyDir := fmt.Sprintf("%s/%s_%s/%s", u.prefix, run.First, run.Second,
		run.Timestamp.Format(timestampLayout))

	var failed int
	for _, path := range paths {
		key := keyDir + "/" + filepath.Base(path)
		if err := u.putFile(path, key); err != nil {
			failed++
			fmt.Fprintf(w, "  upload error: %s: %v\n", key, err)
			continue
		}
		fmt.Fprintf(w, "  uploaded s3://%s/%s\n", u.bucket, key)
	}

	if failed > 0 {
		return fmt.Errorf("%d report file(s) failed to upload", failed)
	}
	return nil
}

func (u *Uploader) putFile(path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	_, err = u.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("putting object: %w", err)
	}
	return nil
}
