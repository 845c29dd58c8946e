package imaging

import (
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CropResult contains the cropped image data
type CropResult struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from an image
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	// Validate coordinates
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	data, err := EncodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X:           x1,
		Y:           y1,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// CropBBox extracts the region under a COCO bbox [x, y, width, height],
// grown by padding pixels on every side and clamped to the image.
// Used to preview what an annotation covers.
func CropBBox(img image.Image, bbox []float64, padding int, scale float64) (*CropResult, error) {
	if len(bbox) != 4 {
		return nil, fmt.Errorf("bbox must have 4 values, got %d", len(bbox))
	}
	bounds := img.Bounds()

	x1 := max(int(math.Floor(bbox[0]))-padding, bounds.Min.X)
	y1 := max(int(math.Floor(bbox[1]))-padding, bounds.Min.Y)
	x2 := min(int(math.Ceil(bbox[0]+bbox[2]))+padding, bounds.Max.X)
	y2 := min(int(math.Ceil(bbox[1]+bbox[3]))+padding, bounds.Max.Y)

	return Crop(img, x1, y1, x2, y2, scale)
}
