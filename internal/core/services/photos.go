package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/pkg/imaging"
)

// PhotoService crops admin uploads and stores them
type PhotoService struct {
	store    ports.PhotoStore
	notifier ports.Notifier
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.PhotoService = (*PhotoService)(nil)

// NewPhotoService creates a photo service
func NewPhotoService(store ports.PhotoStore, notifier ports.Notifier, logger *slog.Logger) *PhotoService {
	return &PhotoService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		logger:   logger.With(slog.String("service", "photos")),
	}
}

// UploadCropped crops src to rect, uploads the JPEG and returns its public URL.
// Crop failures are returned as imaging.ErrProcessing.
func (s *PhotoService) UploadCropped(ctx context.Context, src io.Reader, rect imaging.CropRect) (string, error) {
	data, err := imaging.Crop(src, rect)
	if err != nil {
		s.notify(ctx, domain.NotificationError, "Image processing failed")
		return "", err
	}

	key := ObjectKey(s.now())
	url, err := s.store.Upload(ctx, key, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to upload photo")
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	s.logger.InfoContext(ctx, "photo uploaded",
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	s.notify(ctx, domain.NotificationSuccess, "Photo uploaded")
	return url, nil
}

func (s *PhotoService) notify(ctx context.Context, level domain.NotificationLevel, msg string) {
	s.notifier.Notify(ctx, domain.Notification{Level: level, Message: msg, At: s.now()})
}

// ObjectKey names an uploaded photo <unix-millis>-<random>.jpg
func ObjectKey(t time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s.jpg", t.UnixMilli(), random)
}
