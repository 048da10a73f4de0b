package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coverbox/service/internal/storage"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 16 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, nil)
}

func dimensions(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height, format
}

func TestResizeIdentityWhenWithinBounds(t *testing.T) {
	t.Parallel()

	data := testImage(t, 800, 600, encodePNG)
	out := storage.Resize(data, 1440)
	require.Equal(t, data, out)
}

func TestResizeExactBoundIsIdentity(t *testing.T) {
	t.Parallel()

	data := testImage(t, 1440, 900, encodeJPEG)
	out := storage.Resize(data, 1440)
	require.Equal(t, data, out)
}

func TestResizeWideImage(t *testing.T) {
	t.Parallel()

	data := testImage(t, 3000, 500, encodeJPEG)
	out := storage.Resize(data, 1440)
	require.NotEqual(t, data, out)

	w, h, format := dimensions(t, out)
	require.Equal(t, 1440, w)
	require.Equal(t, 240, h)
	require.Equal(t, "jpeg", format, "format must be preserved")
}

func TestResizeTallImage(t *testing.T) {
	t.Parallel()

	data := testImage(t, 500, 3000, encodePNG)
	out := storage.Resize(data, 1440)

	w, h, format := dimensions(t, out)
	require.Equal(t, 1440, h)
	require.Equal(t, 240, w)
	require.Equal(t, "png", format, "format must be preserved")
}

func TestResizePreservesAspectRatio(t *testing.T) {
	t.Parallel()

	data := testImage(t, 1600, 1200, encodeJPEG)
	out := storage.Resize(data, 1440)

	w, h, _ := dimensions(t, out)
	require.Equal(t, 1440, w)
	// 1200 * 1440 / 1600 = 1080; allow integer-rounding slack
	require.InDelta(t, 1080, h, 1)
}

func TestResizeGarbageInputPassesThrough(t *testing.T) {
	t.Parallel()

	data := []byte("definitely not an image")
	out := storage.Resize(data, 1440)
	require.Equal(t, data, out)
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "image/jpeg", storage.ContentTypeFor(".jpg"))
	require.Equal(t, "image/jpeg", storage.ContentTypeFor(".JPEG"))
	require.Equal(t, "image/png", storage.ContentTypeFor(".png"))
	require.Equal(t, "image/gif", storage.ContentTypeFor(".gif"))
	require.Equal(t, "image/bmp", storage.ContentTypeFor(".bmp"))
	require.Equal(t, "image/webp", storage.ContentTypeFor(".webp"))
	require.Equal(t, "image/jpeg", storage.ContentTypeFor(".tiff"), "unknown extensions default to jpeg")
	require.Equal(t, "image/jpeg", storage.ContentTypeFor(""))
}
