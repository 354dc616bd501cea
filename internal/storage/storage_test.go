package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{in: "RP11.xlsx", want: Location{Path: "RP11.xlsx"}},
		{in: "/data/out dir/RP12[KWs].xlsx", want: Location{Path: "/data/out dir/RP12[KWs].xlsx"}},
		{in: "s3://reviews/2024/RP11.xlsx", want: Location{Bucket: "reviews", Key: "2024/RP11.xlsx"}},
		{in: "s3://reviews", wantErr: true},
		{in: "s3:///key.xlsx", wantErr: true},
		{in: "s3://reviews/", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestLocalWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	fs := New(nil)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, fs.Write(ctx, path, []byte("new content")))

	got, err := fs.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new content"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")
}

func TestLocalWriteMissingDirectory(t *testing.T) {
	err := New(nil).Write(context.Background(), filepath.Join(t.TempDir(), "nope", "out.xlsx"), []byte("x"))
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Read(ctx, filepath.Join(t.TempDir(), "in.xlsx"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestS3RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"reviews/in.xlsx": []byte("workbook")}}
	fs := New(fake)
	ctx := context.Background()

	got, err := fs.Read(ctx, "s3://reviews/in.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("workbook"), got)

	require.NoError(t, fs.Write(ctx, "s3://reviews/out/merged.xlsx", []byte("merged")))
	assert.Equal(t, []byte("merged"), fake.objects["reviews/out/merged.xlsx"])
	require.Len(t, fake.puts, 1)
	assert.Equal(t, xlsxContentType, *fake.puts[0].ContentType)

	_, err = fs.Read(ctx, "s3://reviews/missing.xlsx")
	assert.Error(t, err)
}

func TestS3WithoutClient(t *testing.T) {
	fs := New(nil)
	_, err := fs.Read(context.Background(), "s3://reviews/in.xlsx")
	assert.ErrorIs(t, err, ErrNoS3Client)
	assert.ErrorIs(t, fs.Write(context.Background(), "s3://reviews/out.xlsx", nil), ErrNoS3Client)
}
