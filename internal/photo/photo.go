// Package photo loads patient images for report composition: PNG, JPEG and
// GIF files directly, DICOM files by extracting and re-encoding the first
// frame.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Register the stdlib decoders image.DecodeConfig sniffs with.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var (
	// ErrMissing marks a record whose image path is empty or points to a
	// file that does not exist.
	ErrMissing = errors.New("image missing")
	// ErrUnreadable marks a file that exists but cannot be decoded as a
	// supported image.
	ErrUnreadable = errors.New("image unreadable")
)

// Photo is a patient image ready for embedding: bytes in a format the
// compositor places directly (png, jpeg or gif) plus the pixel dimensions
// that drive aspect-preserving scaling.
type Photo struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Load reads and decodes the image at path. An empty path or a nonexistent
// file is ErrMissing; a file that exists but does not decode is
// ErrUnreadable.
func Load(path string) (*Photo, error) {
	if path == "" {
		return nil, ErrMissing
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode turns raw file bytes into a Photo. DICOM data is converted to PNG;
// PNG/JPEG/GIF bytes are kept as they are.
func Decode(data []byte) (*Photo, error) {
	if isDICOM(data) {
		return fromDICOM(data)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	switch format {
	case "png", "jpeg", "gif":
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", ErrUnreadable, format)
	}

	return &Photo{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// FitBox scales the photo's dimensions to fit a boxW x boxH box, preserving
// aspect ratio, and returns the drawn size plus the offsets that center it
// within the box.
func (p *Photo) FitBox(boxW, boxH float64) (w, h, offsetX, offsetY float64) {
	if p.Width <= 0 || p.Height <= 0 {
		return 0, 0, 0, 0
	}
	aspect := float64(p.Width) / float64(p.Height)
	w, h = boxW, boxH
	if aspect > boxW/boxH {
		h = boxW / aspect
	} else {
		w = boxH * aspect
	}
	offsetX = (boxW - w) / 2
	offsetY = (boxH - h) / 2
	return w, h, offsetX, offsetY
}
