package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/domain"
)

type memBucket struct {
	objects map[string][]byte
}

func (b *memBucket) Put(key string, data []byte) (string, error) {
	b.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadService_Store(t *testing.T) {
	bucket := &memBucket{objects: make(map[string][]byte)}
	s := NewUploadService(bucket, 1<<20, 40, 0)

	upload, err := s.Store(bytes.NewReader(testPNG(t, 200, 100)), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.URL, "https://cdn.test/images/"))
	assert.True(t, strings.HasSuffix(upload.URL, ".png"))
	assert.Equal(t, "image/png", upload.ContentType)
	assert.Empty(t, upload.ThumbnailURL)
	assert.Len(t, bucket.objects, 1)
}

func TestUploadService_StorePhotoMakesThumbnail(t *testing.T) {
	bucket := &memBucket{objects: make(map[string][]byte)}
	s := NewUploadService(bucket, 1<<20, 40, 0)

	upload, err := s.Store(bytes.NewReader(testPNG(t, 200, 100)), domain.UploadPhoto)
	require.NoError(t, err)
	assert.Contains(t, upload.URL, "/photos/")
	require.Contains(t, upload.ThumbnailURL, "/photos/thumbs/")

	key := strings.TrimPrefix(upload.ThumbnailURL, "https://cdn.test/")
	thumb, err := jpeg.Decode(bytes.NewReader(bucket.objects[key]))
	require.NoError(t, err)
	assert.Equal(t, 40, thumb.Bounds().Dx())
	assert.Equal(t, 20, thumb.Bounds().Dy())
}

func TestUploadService_Rejects(t *testing.T) {
	bucket := &memBucket{objects: make(map[string][]byte)}
	s := NewUploadService(bucket, 1024, 40, 0)

	_, err := s.Store(strings.NewReader("plain text is not an image"), domain.UploadImage)
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	_, err = s.Store(bytes.NewReader(testPNG(t, 10, 10)), "video")
	assert.ErrorIs(t, err, ErrInvalidUploadKind)

	big := append(testPNG(t, 10, 10), make([]byte, 2048)...)
	_, err = s.Store(bytes.NewReader(big), domain.UploadImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	assert.Empty(t, bucket.objects)
}

func TestUploadService_OversizedPhotoKeepsOriginal(t *testing.T) {
	bucket := &memBucket{objects: make(map[string][]byte)}
	s := NewUploadService(bucket, 1<<20, 40, 100*100)

	// mostly blank, so the encoded file stays far below the byte limit
	upload, err := s.Store(bytes.NewReader(testPNG(t, 2000, 2000)), domain.UploadPhoto)
	require.NoError(t, err)
	assert.Equal(t, upload.URL, upload.ThumbnailURL)
	assert.Len(t, bucket.objects, 1)

	_, err = s.thumbnail(testPNG(t, 101, 100))
	assert.ErrorIs(t, err, errImageTooLarge)

	thumb, err := s.thumbnail(testPNG(t, 100, 100))
	require.NoError(t, err)
	assert.NotEmpty(t, thumb)
}
