package generator

import (
	"errors"
	"fmt"

	"github.com/ironsheep/coco-sample-mcp/internal/imaging"
	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

// Limits and defaults applied by Config.Normalize.
const (
	MaxImages      = 10
	MaxClasses     = shapes.NumKinds
	MaxAnnotations = 10000

	DefaultImageCount      = 1
	DefaultClassCount      = 4
	DefaultAnnotationCount = 10
	DefaultFilename        = "sample"
	DefaultMaxObjectSize   = 80
	DefaultMaxPairMatches  = 3

	DefaultPerfectMatchRatio = 0.5
	DefaultPartialMatchRatio = 0.2
	DefaultNoMatchRatio      = 0.1
	DefaultAdditionalRatio   = 0.1
)

// Config is the generation request. Zero values select the documented
// defaults; pointer fields are used where zero is a meaningful setting.
type Config struct {
	// Width and Height are the canvas size in pixels (required, > 0).
	Width  int `json:"width"`
	Height int `json:"height"`

	// OutputDir receives every generated file. Created if missing.
	OutputDir string `json:"output_dir"`

	// ImageCount is the number of canvases, capped at MaxImages.
	ImageCount int `json:"image_count,omitempty"`

	// ClassCount is the number of shape categories, capped at MaxClasses.
	ClassCount int `json:"class_count,omitempty"`

	// AnnotationCount is the number of shapes requested per image.
	AnnotationCount int `json:"annotation_count,omitempty"`

	// Filename is the prefix of every output file.
	Filename string `json:"filename,omitempty"`

	// MaxObjectSize is the shape size budget in pixels, clamped to half the
	// smaller canvas dimension.
	MaxObjectSize int `json:"max_object_size,omitempty"`

	AllowOverlap *bool `json:"allow_overlap,omitempty"`

	IncludeLicenses     bool `json:"include_licenses,omitempty"`
	IncludeOption       bool `json:"include_option,omitempty"`
	IncludeMultiPolygon bool `json:"include_multi_polygon,omitempty"`

	// Pair dataset settings.
	IncludePairJSON         bool     `json:"include_pair_json,omitempty"`
	ChangePairCategoryNames bool     `json:"change_pair_category_names,omitempty"`
	MaxPairMatches          int      `json:"max_pair_matches,omitempty"`
	PairPerfectMatchRatio   *float64 `json:"pair_perfect_match_ratio,omitempty"`
	PairPartialMatchRatio   *float64 `json:"pair_partial_match_ratio,omitempty"`
	PairNoMatchRatio        *float64 `json:"pair_no_match_ratio,omitempty"`
	PairAdditionalRatio     *float64 `json:"pair_additional_ratio,omitempty"`

	// ColorMode is "category" (default) or "gray".
	ColorMode string `json:"color_mode,omitempty"`

	// Seed makes a run reproducible. A random seed is used when nil.
	Seed *uint64 `json:"seed,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Uint returns a pointer to n.
func Uint(n uint64) *uint64 { return &n }

// Normalize returns a copy of c with defaults filled in and counts capped.
// Every pointer field except Seed is non-nil afterwards.
func (c Config) Normalize() Config {
	if c.ImageCount <= 0 {
		c.ImageCount = DefaultImageCount
	}
	c.ImageCount = min(c.ImageCount, MaxImages)

	if c.ClassCount <= 0 {
		c.ClassCount = DefaultClassCount
	}
	c.ClassCount = min(c.ClassCount, MaxClasses)

	if c.AnnotationCount <= 0 {
		c.AnnotationCount = DefaultAnnotationCount
	}
	c.AnnotationCount = min(c.AnnotationCount, MaxAnnotations)
	if c.Filename == "" {
		c.Filename = DefaultFilename
	}
	if c.MaxObjectSize <= 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
	if c.AllowOverlap == nil {
		c.AllowOverlap = Bool(true)
	}
	if c.MaxPairMatches <= 0 {
		c.MaxPairMatches = DefaultMaxPairMatches
	}

	c.PairPerfectMatchRatio = orDefault(c.PairPerfectMatchRatio, DefaultPerfectMatchRatio)
	c.PairPartialMatchRatio = orDefault(c.PairPartialMatchRatio, DefaultPartialMatchRatio)
	c.PairNoMatchRatio = orDefault(c.PairNoMatchRatio, DefaultNoMatchRatio)
	c.PairAdditionalRatio = orDefault(c.PairAdditionalRatio, DefaultAdditionalRatio)

	if c.ColorMode == "" {
		c.ColorMode = string(imaging.ColorByCategory)
	}
	return c
}

func orDefault(p *float64, def float64) *float64 {
	if p == nil {
		return Float(def)
	}
	return p
}

// Validate reports configuration errors that would make generation fail.
// It is called before any file is written.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if _, err := imaging.ParseColorMode(c.ColorMode); err != nil {
		return err
	}

	ratios := []struct {
		name string
		v    *float64
	}{
		{"pair_perfect_match_ratio", c.PairPerfectMatchRatio},
		{"pair_partial_match_ratio", c.PairPartialMatchRatio},
		{"pair_no_match_ratio", c.PairNoMatchRatio},
		{"pair_additional_ratio", c.PairAdditionalRatio},
	}
	for _, r := range ratios {
		if r.v != nil && (*r.v < 0 || *r.v > 1) {
			return fmt.Errorf("%s must be within [0, 1], got %g", r.name, *r.v)
		}
	}
	return nil
}

// PairOptions extracts the pair generator settings from a normalized config.
func (c Config) PairOptions() PairOptions {
	return PairOptions{
		MaxMatches:      c.MaxPairMatches,
		PerfectRatio:    *c.PairPerfectMatchRatio,
		PartialRatio:    *c.PairPartialMatchRatio,
		NoMatchRatio:    *c.PairNoMatchRatio,
		AdditionalRatio: *c.PairAdditionalRatio,
		RenameCategory:  c.ChangePairCategoryNames,
	}
}
