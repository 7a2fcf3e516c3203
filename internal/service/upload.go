package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/asclub/club-api/internal/domain"
)

var (
	ErrFileTooLarge         = errors.New("file is too large")
	ErrUnsupportedMediaType = errors.New("only jpeg, png, gif and webp images are accepted")
	ErrInvalidUploadKind    = errors.New("invalid upload kind")

	errImageTooLarge = errors.New("image dimensions exceed the thumbnail pixel limit")
)

// DefaultMaxThumbnailPixels applies when no pixel limit is configured.
const DefaultMaxThumbnailPixels = 40_000_000

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Bucket interface {
	Put(key string, data []byte) (string, error)
}

type UploadService struct {
	bucket         Bucket
	maxBytes       int64
	thumbnailWidth uint
	maxPixels      int64
}

// NewUploadService builds the service. Images larger than maxPixels are
// stored without a resized thumbnail; maxPixels <= 0 uses the default.
func NewUploadService(bucket Bucket, maxBytes int64, thumbnailWidth uint, maxPixels int64) *UploadService {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxThumbnailPixels
	}

	return &UploadService{
		bucket:         bucket,
		maxBytes:       maxBytes,
		thumbnailWidth: thumbnailWidth,
		maxPixels:      maxPixels,
	}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Store sniffs, validates and saves an uploaded image. Gallery photos also
// get a thumbnail when the format can be decoded.
func (s *UploadService) Store(r io.Reader, kind domain.UploadKind) (domain.Upload, error) {
	if kind == "" {
		kind = domain.UploadImage
	}
	if !kind.Valid() {
		return domain.Upload{}, ErrInvalidUploadKind
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return domain.Upload{}, fmt.Errorf("io.ReadAll -> %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return domain.Upload{}, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return domain.Upload{}, ErrUnsupportedMediaType
	}

	name := uuid.NewString()
	folder := string(kind) + "s"

	url, err := s.bucket.Put(path.Join(folder, name+mtype.Extension()), data)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("s.bucket.Put -> %w", err)
	}

	upload := domain.Upload{
		URL:         url,
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}

	if kind == domain.UploadPhoto {
		upload.ThumbnailURL = url
		thumb, err := s.thumbnail(data)
		if err != nil {
			zap.L().Info("keeping original as thumbnail", zap.String("content_type", mtype.String()), zap.Error(err))
			return upload, nil
		}
		thumbURL, err := s.bucket.Put(path.Join(folder, "thumbs", name+".jpg"), thumb)
		if err != nil {
			return domain.Upload{}, fmt.Errorf("s.bucket.Put -> %w", err)
		}
		upload.ThumbnailURL = thumbURL
	}

	return upload, nil
}

func (s *UploadService) thumbnail(data []byte) ([]byte, error) {
	// the header is enough to reject images that would not fit in memory
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > s.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", errImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if uint(img.Bounds().Dx()) > s.thumbnailWidth {
		img = resize.Resize(s.thumbnailWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
