package generator

import (
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/coco-sample-mcp/internal/coco"
	"github.com/ironsheep/coco-sample-mcp/internal/imaging"
	"github.com/ironsheep/coco-sample-mcp/internal/placement"
)

// Generator renders sample datasets.
type Generator struct {
	// Store receives the output files. Defaults to OSStore.
	Store Store

	// Now stamps info and option timestamps. Defaults to time.Now.
	Now func() time.Time

	// Logger receives progress messages when set.
	Logger *log.Logger
}

// New returns a Generator writing to the local filesystem.
func New() *Generator {
	return &Generator{Store: OSStore{}, Now: time.Now}
}

// Result describes one generation run.
type Result struct {
	OutputDir      string     `json:"output_dir"`
	ImageFiles     []string   `json:"image_files"`
	AnnotationFile string     `json:"annotation_file"`
	PairFile       string     `json:"pair_file,omitempty"`
	Classes        int        `json:"classes"`
	Images         int        `json:"images"`
	Requested      int        `json:"requested_annotations"`
	Annotations    int        `json:"annotations"`
	Seed           uint64     `json:"seed"`
	Pair           *PairStats `json:"pair,omitempty"`
	Message        string     `json:"message"`

	Dataset     *coco.Dataset `json:"-"`
	PairDataset *coco.Dataset `json:"-"`
}

// Limited reports whether placement fell short of the request.
func (r *Result) Limited() bool {
	return r.Annotations < r.Requested
}

// ImageFileName returns the file name of the n-th (1-based) image out of count.
func ImageFileName(base string, n, count int) string {
	if count <= 1 {
		return base + "-image.png"
	}
	return fmt.Sprintf("%s-image-%d.png", base, n)
}

// AnnotationFileName returns the name of the annotation file.
func AnnotationFileName(base string) string {
	return base + "-annotation.json"
}

// PairFileName returns the name of the pair annotation file.
func PairFileName(base string) string {
	return base + "-pair.json"
}

// Generate validates cfg, renders every image and writes the annotation
// files. Placing fewer shapes than requested is not an error; it is reported
// in the result message.
func (g *Generator) Generate(cfg Config) (*Result, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := imaging.ParseColorMode(cfg.ColorMode)

	store := g.Store
	if store == nil {
		store = OSStore{}
	}
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := NewRand(seed)

	if err := store.MkdirAll(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ds := &coco.Dataset{
		Info:        newInfo(now),
		Images:      make([]coco.Image, 0, cfg.ImageCount),
		Annotations: []coco.Annotation{},
		Categories:  Categories(cfg.ClassCount),
	}
	if cfg.IncludeLicenses {
		ds.Licenses = Licenses()
	}

	res := &Result{
		OutputDir: cfg.OutputDir,
		Classes:   cfg.ClassCount,
		Images:    cfg.ImageCount,
		Requested: cfg.AnnotationCount * cfg.ImageCount,
		Seed:      seed,
	}

	engine := placement.Engine{
		Width:        cfg.Width,
		Height:       cfg.Height,
		NumClasses:   cfg.ClassCount,
		MaxSize:      cfg.MaxObjectSize,
		AllowOverlap: *cfg.AllowOverlap,
		MultiPolygon: cfg.IncludeMultiPolygon,
	}

	var nextAnnID int64
	for n := 1; n <= cfg.ImageCount; n++ {
		canvas := imaging.NewCanvas(cfg.Width, cfg.Height)
		placed := engine.Place(rng, cfg.AnnotationCount, func(p placement.Part) {
			col := imaging.ShapeColor(mode, p.Shape.CategoryID, cfg.ClassCount)
			canvas.DrawShape(p.Shape, col)
			for _, poly := range p.Secondaries {
				canvas.FillPolygon(poly, col)
			}
		})

		name := ImageFileName(cfg.Filename, n, cfg.ImageCount)
		data, err := imaging.EncodePNG(canvas.Image())
		if err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		if err := store.WriteFile(filepath.Join(cfg.OutputDir, name), data); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		res.ImageFiles = append(res.ImageFiles, name)

		img := coco.Image{
			ID:       int64(n),
			Width:    cfg.Width,
			Height:   cfg.Height,
			FileName: name,
		}
		if cfg.IncludeLicenses {
			img.License = coco.Int(1 + rng.IntN(len(ds.Licenses)))
		}
		ds.Images = append(ds.Images, img)

		for _, p := range placed.Parts {
			nextAnnID++
			ann := annotationFor(nextAnnID, img.ID, p)
			if cfg.IncludeOption {
				if ann.Option, err = newOption(rng, now); err != nil {
					return nil, err
				}
			}
			ds.Annotations = append(ds.Annotations, ann)
		}

		g.logf("image %d/%d: placed %d of %d shapes in %d attempts",
			n, cfg.ImageCount, len(placed.Parts), cfg.AnnotationCount, placed.Attempts)
	}
	res.Annotations = len(ds.Annotations)
	res.Dataset = ds

	res.AnnotationFile = AnnotationFileName(cfg.Filename)
	if err := writeDataset(store, filepath.Join(cfg.OutputDir, res.AnnotationFile), ds); err != nil {
		return nil, err
	}

	if cfg.IncludePairJSON {
		pair, stats := GeneratePair(rng, ds, cfg.PairOptions())
		res.PairFile = PairFileName(cfg.Filename)
		if err := writeDataset(store, filepath.Join(cfg.OutputDir, res.PairFile), pair); err != nil {
			return nil, err
		}
		res.Pair = &stats
		res.PairDataset = pair
	}

	res.Message = summary(res)
	g.logf("%s", res.Message)
	return res, nil
}

func writeDataset(store Store, path string, ds *coco.Dataset) error {
	data, err := coco.Encode(ds)
	if err != nil {
		return fmt.Errorf("failed to serialize COCO data: %w", err)
	}
	if err := store.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to save JSON file: %w", err)
	}
	return nil
}

func summary(r *Result) string {
	var b strings.Builder
	if r.Limited() {
		fmt.Fprintf(&b, "Sample data generated in %s with %d classes and %d annotations (requested: %d, limited by space constraints)",
			r.OutputDir, r.Classes, r.Annotations, r.Requested)
	} else {
		fmt.Fprintf(&b, "Sample data generated successfully in %s with %d classes and %d annotations",
			r.OutputDir, r.Classes, r.Annotations)
	}
	if r.Images > 1 {
		fmt.Fprintf(&b, " across %d images", r.Images)
	}
	if p := r.Pair; p != nil {
		fmt.Fprintf(&b, "; pair file %s with %d annotations (perfect %d, partial %d, no match %d, multiple %d, additional %d)",
			r.PairFile, p.Output, p.Perfect, p.Partial, p.NoMatch, p.Multiple, p.Additional)
	}
	return b.String()
}

func (g *Generator) logf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Printf(format, args...)
	}
}

// NewRand returns the generator's random source for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
