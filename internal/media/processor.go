// Package media normalizes uploaded images and keeps them in object storage.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	DefaultMaxSide = 512
	DefaultQuality = 80

	ContentType = "image/webp"

	// MaxUploadBytes bounds what Process will read.
	MaxUploadBytes = 8 << 20
)

var ErrInvalidImage = httperr.ErrBusiness("invalid_image")

// Processor decodes JPEG, PNG or WebP input, shrinks it to fit a square of
// maxSide pixels and re-encodes it as WebP.
type Processor struct {
	maxSide int
	quality float32
}

func NewProcessor(maxSide int, quality float32) *Processor {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Processor{maxSide: maxSide, quality: quality}
}

func (p *Processor) Process(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, ErrInvalidImage
	}

	dst := p.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// resize keeps the aspect ratio and never upscales.
func (p *Processor) resize(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > p.maxSide || h > p.maxSide {
		if w >= h {
			h = max(1, h*p.maxSide/w)
			w = p.maxSide
		} else {
			w = max(1, w*p.maxSide/h)
			h = p.maxSide
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
