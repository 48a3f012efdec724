package helper

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

const MaxUploadSize = int64(5 * 1024 * 1024)

type WebPOptions struct {
	MaxW     int
	MaxH     int
	Quality  float32
	Lossless bool
}

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// DefaultWebPOptions reads IMAGE_WEBP_MAX_W / MAX_H / QUALITY.
func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:    envInt("IMAGE_WEBP_MAX_W", 800),
		MaxH:    envInt("IMAGE_WEBP_MAX_H", 800),
		Quality: float32(envInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

// DecodeImage sniffs the content type and decodes jpeg/png/gif/bmp/tiff/webp.
func DecodeImage(data []byte, filename string) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	if strings.Contains(ct, "webp") || ext == ".webp" {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}
	return img, nil
}

// ConvertToWebP decodes, downscales to fit MaxW x MaxH keeping aspect, and encodes WebP.
func ConvertToWebP(data []byte, filename string, opt WebPOptions) ([]byte, error) {
	img, err := DecodeImage(data, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		maxW, maxH := opt.MaxW, opt.MaxH
		if maxW <= 0 {
			maxW = b.Dx()
		}
		if maxH <= 0 {
			maxH = b.Dy()
		}
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
