package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	input    *s3.PutObjectInput
	body     []byte
	location string
	err      error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	if input.Body != nil {
		f.body, _ = io.ReadAll(input.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{Location: f.location}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestS3Storage_Upload(t *testing.T) {
	tests := []struct {
		name        string
		publicBase  string
		contentType string
		wantURL     string
		wantType    string
	}{
		{
			name:     "location_from_uploader",
			wantURL:  "https://motos.s3.amazonaws.com/1700000000000-ab12cd.jpg",
			wantType: "image/jpeg",
		},
		{
			name:        "public_base_url_overrides_location",
			publicBase:  "https://cdn.example.com/motos",
			contentType: "image/jpeg",
			wantURL:     "https://cdn.example.com/motos/1700000000000-ab12cd.jpg",
			wantType:    "image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUploader{location: "https://motos.s3.amazonaws.com/1700000000000-ab12cd.jpg"}
			s := &S3Storage{uploader: up, bucket: "motos", publicBaseURL: tt.publicBase, logger: testLogger()}

			url, err := s.Upload(context.Background(), "1700000000000-ab12cd.jpg", bytes.NewReader([]byte("jpeg")), tt.contentType)
			require.NoError(t, err)

			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, "motos", aws.ToString(up.input.Bucket))
			assert.Equal(t, "1700000000000-ab12cd.jpg", aws.ToString(up.input.Key))
			assert.Equal(t, tt.wantType, aws.ToString(up.input.ContentType))
			assert.Equal(t, []byte("jpeg"), up.body)
		})
	}
}

func TestS3Storage_UploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("access denied")}
	s := &S3Storage{uploader: up, bucket: "motos", logger: testLogger()}

	_, err := s.Upload(context.Background(), "a.jpg", bytes.NewReader(nil), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocalStorage(dir, "http://localhost:8080/uploads/", testLogger())
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), "1700000000000-ab12cd.jpg", bytes.NewReader([]byte("jpeg")), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/1700000000000-ab12cd.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000000-ab12cd.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	l, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads", testLogger())
	require.NoError(t, err)

	for _, key := range []string{"../escape.jpg", "", "a/../../b.jpg"} {
		_, err := l.Upload(context.Background(), key, bytes.NewReader(nil), "")
		assert.Error(t, err, key)
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeFor("x.jpg"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("x"))
}
