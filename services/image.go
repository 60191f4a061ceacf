package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// MaxDimension is the largest edge an intake image may keep. Larger
	// images are scaled down preserving aspect ratio; smaller ones are
	// never upscaled.
	MaxDimension = 800

	jpegQuality = 70

	// defaultMaxEncodedLength bounds the base64-encoded size of the
	// re-encoded image, roughly 750KB of binary.
	defaultMaxEncodedLength = 1_000_000
)

var (
	ErrNotAnImage    = errors.New("file is not a decodable image")
	ErrImageTooLarge = errors.New("image exceeds maximum encoded size after compression")
)

// ProcessedImage is the pipeline output: a JPEG ready for the asset store.
type ProcessedImage struct {
	Data   []byte
	Width  int
	Height int
}

func (p *ProcessedImage) ContentType() string {
	return "image/jpeg"
}

type pipelineConfig struct {
	maxEncodedLength int
}

type ImageOption func(*pipelineConfig)

// WithMaxEncodedLength overrides the encoded-size guard.
func WithMaxEncodedLength(n int) ImageOption {
	return func(c *pipelineConfig) {
		c.maxEncodedLength = n
	}
}

// ProcessImage decodes a user-selected image, scales it to fit within
// MaxDimension on both edges and re-encodes it as a lossy JPEG. The result
// is rejected when its base64-encoded length would exceed the guard, so an
// oversize upload never reaches the asset store.
func ProcessImage(r io.Reader, opts ...ImageOption) (*ProcessedImage, error) {
	cfg := pipelineConfig{maxEncodedLength: defaultMaxEncodedLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		src = imaging.Fit(src, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	if base64.StdEncoding.EncodedLen(buf.Len()) > cfg.maxEncodedLength {
		return nil, ErrImageTooLarge
	}

	out := src.Bounds()
	return &ProcessedImage{
		Data:   buf.Bytes(),
		Width:  out.Dx(),
		Height: out.Dy(),
	}, nil
}
