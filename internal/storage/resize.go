package storage

import (
	"bytes"
	"image"
	"log"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding
)

// Resize scales image data down so that its longer edge equals maxSize,
// preserving aspect ratio, and re-encodes it in its original format (JPEG at
// quality 85). Images already within maxSize are returned unchanged, as is
// the input whenever decoding or re-encoding fails — resizing is best-effort
// and never fails an upload.
func Resize(data []byte, maxSize int) []byte {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Printf("resize: decode config: %v", err)
		return data
	}
	if cfg.Width <= maxSize && cfg.Height <= maxSize {
		return data
	}

	format, ok := encodableFormat(name)
	if !ok {
		// webp and friends decode fine but have no encoder
		log.Printf("resize: no encoder for %s, keeping original", name)
		return data
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("resize: decode: %v", err)
		return data
	}

	var dst image.Image
	if cfg.Width >= cfg.Height {
		dst = imaging.Resize(src, maxSize, 0, imaging.Lanczos)
	} else {
		dst = imaging.Resize(src, 0, maxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	opts := []imaging.EncodeOption{}
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(85))
	}
	if err := imaging.Encode(&buf, dst, format, opts...); err != nil {
		log.Printf("resize: encode: %v", err)
		return data
	}
	return buf.Bytes()
}

func encodableFormat(name string) (imaging.Format, bool) {
	switch name {
	case "jpeg":
		return imaging.JPEG, true
	case "png":
		return imaging.PNG, true
	case "gif":
		return imaging.GIF, true
	case "bmp":
		return imaging.BMP, true
	case "tiff":
		return imaging.TIFF, true
	}
	return imaging.Format(-1), false
}
