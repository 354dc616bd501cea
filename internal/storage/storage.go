// Package storage reads and writes workbook files on local disk or in S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"
)

const (
	s3Scheme        = "s3://"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrNoS3Client is returned for s3:// locations when no S3 client was configured.
var ErrNoS3Client = errors.New("s3 location given but no S3 client configured")

// Location is either a local path or an S3 object.
type Location struct {
	Path   string
	Bucket string
	Key    string
}

// ParseLocation accepts a local path or s3://bucket/key.
func ParseLocation(s string) (Location, error) {
	if !strings.HasPrefix(s, s3Scheme) {
		if s == "" {
			return Location{}, errors.New("empty location")
		}
		return Location{Path: s}, nil
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(s, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", s)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// IsS3 reports whether the location is an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// Files reads and writes whole files.
type Files struct {
	s3 s3iface.S3API
}

// New creates Files. s3Client may be nil when only local paths are used.
func New(s3Client s3iface.S3API) *Files {
	return &Files{s3: s3Client}
}

// Read returns the whole content at location.
func (fs *Files) Read(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if !loc.IsS3() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.ReadFile(loc.Path)
	}
	if fs.s3 == nil {
		return nil, ErrNoS3Client
	}
	return downloadFileFromS3(ctx, fs.s3, loc.Bucket, loc.Key)
}

// Write stores data at location. Local files are written to a temporary file
// in the same directory and renamed into place, so readers never see a
// partial workbook.
func (fs *Files) Write(ctx context.Context, location string, data []byte) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return err
	}
	if !loc.IsS3() {
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeFileAtomic(loc.Path, data)
	}
	if fs.s3 == nil {
		return ErrNoS3Client
	}
	_, err = fs.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xlsxContentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", loc, err)
	}
	return nil
}

func downloadFileFromS3(ctx context.Context, s3Svc s3iface.S3API, bucket, key string) ([]byte, error) {
	output, err := s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			zap.S().Warnw("closing S3 response body", "error", err)
		}
	}(output.Body)

	return io.ReadAll(output.Body)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kwmerge-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
