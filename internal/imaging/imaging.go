// Package imaging produces small JPEG previews of product images.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ThumbnailSize is the default bounding box for previews.
const ThumbnailSize = 256

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 80

// MaxSourceBytes caps how much of a remote image is read.
const MaxSourceBytes = 8 << 20

// MaxSourcePixels caps the declared dimensions of a source image, checked
// from the header before decoding.
const MaxSourcePixels = 40_000_000

// ErrUnsupported is returned for inputs that are not JPEG, PNG or WebP.
var ErrUnsupported = errors.New("unsupported image format")

// ErrTooLarge is returned for images whose declared size exceeds
// MaxSourcePixels.
var ErrTooLarge = errors.New("image dimensions too large")

// allowedMIME lists the accepted input MIME types.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Thumbnail is an encoded preview.
type Thumbnail struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// MakeThumbnail sniffs and decodes r, fits it inside maxDim x maxDim and
// re-encodes it as JPEG. Smaller images are never upscaled.
func MakeThumbnail(r io.Reader, maxDim int) (*Thumbnail, error) {
	if maxDim <= 0 {
		maxDim = ThumbnailSize
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxSourceBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxSourceBytes)
	}

	// Sniff from bytes; remote servers often mislabel images.
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxSourcePixels/cfg.Height {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Thumbnail{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Fetcher downloads remote product images and thumbnails them.
type Fetcher struct {
	client *http.Client
	size   int
}

// NewFetcher returns a Fetcher with the given request timeout and
// thumbnail size.
func NewFetcher(timeout time.Duration, size int) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, size: size}
}

// Fetch downloads url and returns its thumbnail.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Thumbnail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: unexpected status %d", resp.StatusCode)
	}
	return MakeThumbnail(resp.Body, f.size)
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
}
