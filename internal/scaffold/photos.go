package scaffold

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// PhotoPNG renders a small deterministic portrait placeholder: a warm
// vertical gradient with pixel noise and a lighter oval, enough
// structure to make photo-box scaling visible on the report.
func PhotoPNG(seed uint64, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid photo size %dx%d", width, height)
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := 70.0 + 110.0*float64(y)/float64(height)
			noise := (rng.Float64() - 0.5) * 18.0

			dx := (float64(x) - float64(width)/2) / (float64(width) * 0.32)
			dy := (float64(y) - float64(height)*0.42) / (float64(height) * 0.30)
			if dx*dx+dy*dy < 1 {
				base += 55
			}

			v := clampByte(base + noise)
			img.SetRGBA(x, y, color.RGBA{
				R: v,
				G: clampByte(float64(v) * 0.88),
				B: clampByte(float64(v) * 0.78),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode sample photo: %w", err)
	}
	return buf.Bytes(), nil
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// mustNewElement creates a DICOM element and panics on error. The
// element values below are fixed shapes, so a failure is a programming
// error, not an input condition.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("create element %v: %v", t, err))
	}
	return elem
}

// PhotoDICOM renders a deterministic 16-bit MONOCHROME2 secondary
// capture, a diagonal gradient with noise, and returns the encoded
// DICOM file.
func PhotoDICOM(seed uint64, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid photo size %dx%d", width, height)
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	const maxVal = 4095.0
	nativeFrame := frame.NewNativeFrame[uint16](16, height, width, width*height, 1)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gradient := maxVal * float64(x+y) / float64(width+height)
			noise := (rng.Float64() - 0.5) * maxVal * 0.075
			v := gradient + noise
			if v < 0 {
				v = 0
			}
			if v > maxVal {
				v = maxVal
			}
			nativeFrame.RawData[i] = uint16(v)
			i++
		}
	}

	sopInstanceUID := fmt.Sprintf("1.2.826.0.1.3680043.8.498.%d", seed%100000000)

	ds := dicom.Dataset{Elements: []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(tag.SOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.7"}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.PatientName, []string{"Sample^Patient"}),
		mustNewElement(tag.Rows, []int{height}),
		mustNewElement(tag.Columns, []int{width}),
		mustNewElement(tag.BitsAllocated, []int{16}),
		mustNewElement(tag.BitsStored, []int{16}),
		mustNewElement(tag.HighBit, []int{15}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{{Encapsulated: false, NativeData: nativeFrame}},
		}),
	}}

	var buf bytes.Buffer
	if err := dicom.Write(&buf, ds); err != nil {
		return nil, fmt.Errorf("encode sample scan: %w", err)
	}
	return buf.Bytes(), nil
}
