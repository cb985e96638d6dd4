package photo

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// isDICOM checks for the DICM marker after the 128-byte preamble.
func isDICOM(data []byte) bool {
	return len(data) > 132 && bytes.Equal(data[128:132], []byte("DICM"))
}

// fromDICOM extracts the first frame of a DICOM file and re-encodes it as
// PNG so the compositor can embed it like any other photo.
func fromDICOM(data []byte) (*Photo, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dicom: %v", ErrUnreadable, err)
	}

	elem, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: dicom has no pixel data", ErrUnreadable)
	}

	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok || len(info.Frames) == 0 {
		return nil, fmt.Errorf("%w: dicom has no frames", ErrUnreadable)
	}

	img, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("%w: decode dicom frame: %v", ErrUnreadable, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode dicom frame: %v", ErrUnreadable, err)
	}

	bounds := img.Bounds()
	return &Photo{
		Data:   buf.Bytes(),
		Format: "png",
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
