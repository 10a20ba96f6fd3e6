package services_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/pkg/imaging"
	"github.com/wsvendas/motostock/test/helpers"
	"github.com/wsvendas/motostock/test/mocks"
)

var objectKeyPattern = regexp.MustCompile(`^\d{13}-[0-9a-f]{12}\.jpg$`)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoService_UploadCropped(t *testing.T) {
	ctx := context.Background()

	t.Run("crops_and_uploads_jpeg", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockPhotoStore(ctrl)
		feed := services.NewNotificationFeed(5, helpers.TestLogger())
		svc := services.NewPhotoService(store, feed, helpers.TestLogger())

		var uploaded []byte
		store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
			DoAndReturn(func(_ context.Context, key string, body io.Reader, _ string) (string, error) {
				assert.Regexp(t, objectKeyPattern, key)
				uploaded, _ = io.ReadAll(body)
				return "https://cdn.test/motos/" + key, nil
			})

		url, err := svc.UploadCropped(ctx, bytes.NewReader(samplePNG(t, 100, 80)),
			imaging.CropRect{X: 50, Y: 40, Width: 120, Aspect: 4.0 / 3.0})
		require.NoError(t, err)
		assert.Contains(t, url, "https://cdn.test/motos/")

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(uploaded))
		require.NoError(t, err)
		assert.Equal(t, 120, cfg.Width)
		assert.Equal(t, 90, cfg.Height)
		assert.Equal(t, domain.NotificationSuccess, feed.Recent(1)[0].Level)
	})

	t.Run("undecodable_input_is_processing_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockPhotoStore(ctrl)
		feed := services.NewNotificationFeed(5, helpers.TestLogger())
		svc := services.NewPhotoService(store, feed, helpers.TestLogger())

		_, err := svc.UploadCropped(ctx, bytes.NewReader([]byte("not an image")),
			imaging.CropRect{Width: 10, Height: 10})
		require.ErrorIs(t, err, imaging.ErrProcessing)
		assert.Equal(t, "Image processing failed", feed.Recent(1)[0].Message)
	})

	t.Run("store_failure_is_reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockPhotoStore(ctrl)
		feed := services.NewNotificationFeed(5, helpers.TestLogger())
		svc := services.NewPhotoService(store, feed, helpers.TestLogger())

		store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errStore)

		_, err := svc.UploadCropped(ctx, bytes.NewReader(samplePNG(t, 10, 10)),
			imaging.CropRect{Width: 10, Height: 10})
		require.ErrorIs(t, err, errStore)
		assert.Equal(t, domain.NotificationError, feed.Recent(1)[0].Level)
	})
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	a, b := services.ObjectKey(at), services.ObjectKey(at)

	assert.Regexp(t, objectKeyPattern, a)
	assert.Equal(t, "1700000000123-", a[:14])
	assert.NotEqual(t, a, b)
}
