package coco

import (
	"github.com/go-json-experiment/json/jsontext"
)

// Dataset is a complete COCO annotation file.
type Dataset struct {
	Info        *Info        `json:"info,omitzero"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
	Licenses    []License    `json:"licenses,omitzero"`

	// Extra holds top-level members not listed above, in input order.
	Extra jsontext.Value `json:",unknown"`
}

// Info describes the provenance of a dataset.
type Info struct {
	Description *string `json:"description,omitzero"`
	URL         *string `json:"url,omitzero"`
	Version     *string `json:"version,omitzero"`
	Year        *int    `json:"year,omitzero"`
	Contributor *string `json:"contributor,omitzero"`
	DateCreated *string `json:"date_created,omitzero"`

	Extra jsontext.Value `json:",unknown"`
}

// License is a license record referenced by images.
type License struct {
	URL  *string `json:"url,omitzero"`
	ID   int     `json:"id"`
	Name string  `json:"name"`

	Extra jsontext.Value `json:",unknown"`
}

// Image is a single image entry.
type Image struct {
	ID           int64   `json:"id"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	FileName     string  `json:"file_name"`
	License      *int    `json:"license,omitzero"`
	FlickrURL    *string `json:"flickr_url,omitzero"`
	CocoURL      *string `json:"coco_url,omitzero"`
	DateCaptured *string `json:"date_captured,omitzero"`

	Extra jsontext.Value `json:",unknown"`
}

// Annotation is one labeled object instance.
type Annotation struct {
	ID           int64       `json:"id"`
	ImageID      int64       `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	Segmentation [][]float64 `json:"segmentation"`
	Area         float64     `json:"area"`
	BBox         []float64   `json:"bbox"` // [x, y, width, height]
	IsCrowd      int         `json:"iscrowd"`

	// Option is a free-form JSON object for tool-specific metadata
	// such as detection confidence.
	Option jsontext.Value `json:"option,omitzero"`

	Extra jsontext.Value `json:",unknown"`
}

// Category is an object class.
type Category struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Supercategory *string `json:"supercategory,omitzero"`

	Extra jsontext.Value `json:",unknown"`
}

// Clone returns a deep copy of the annotation. Raw JSON members are copied
// so the clone can be edited independently.
func (a Annotation) Clone() Annotation {
	c := a
	c.Segmentation = make([][]float64, len(a.Segmentation))
	for i, poly := range a.Segmentation {
		c.Segmentation[i] = append([]float64(nil), poly...)
	}
	c.BBox = append([]float64(nil), a.BBox...)
	if a.Option != nil {
		c.Option = append(jsontext.Value(nil), a.Option...)
	}
	if a.Extra != nil {
		c.Extra = append(jsontext.Value(nil), a.Extra...)
	}
	return c
}

// ImageByID returns the image with the given id.
func (d *Dataset) ImageByID(id int64) (Image, bool) {
	for _, img := range d.Images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}

// String returns a pointer to s, for the optional string members.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
