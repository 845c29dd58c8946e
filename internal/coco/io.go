package coco

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Decode parses a COCO JSON document. Unknown members are preserved in the
// Extra fields of the entity they belong to.
func Decode(data []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode serializes a dataset as pretty-printed JSON.
func Encode(d *Dataset) ([]byte, error) {
	return json.Marshal(d, jsontext.WithIndent("  "))
}

// LoadFile reads, parses and validates an annotation file.
//
// Errors:
//   - the file does not exist
//   - the file cannot be read
//   - the contents are not valid COCO JSON
//   - the dataset fails Validate
func LoadFile(path string) (*Dataset, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate performs the basic structural checks a viewer relies on.
func (d *Dataset) Validate() error {
	if len(d.Images) == 0 {
		return errors.New("no images found in COCO data")
	}
	if len(d.Categories) == 0 {
		return errors.New("no categories found in COCO data")
	}
	for _, a := range d.Annotations {
		if len(a.BBox) != 4 {
			return fmt.Errorf("invalid bbox format for annotation %d", a.ID)
		}
	}
	return nil
}
