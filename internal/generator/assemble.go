package generator

import (
	"fmt"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/ironsheep/coco-sample-mcp/internal/coco"
	"github.com/ironsheep/coco-sample-mcp/internal/placement"
	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

const (
	infoDescription = "Sample COCO dataset generated for testing"
	infoVersion     = "1.0"
	infoContributor = "COAV"
)

func newInfo(now time.Time) *coco.Info {
	return &coco.Info{
		Description: coco.String(infoDescription),
		Version:     coco.String(infoVersion),
		Year:        coco.Int(now.Year()),
		Contributor: coco.String(infoContributor),
		DateCreated: coco.String(now.Format(time.RFC3339)),
	}
}

// Licenses returns the two license records attached when licenses are
// requested. Images reference them by id.
func Licenses() []coco.License {
	return []coco.License{
		{
			URL:  coco.String("http://creativecommons.org/licenses/by/4.0/"),
			ID:   1,
			Name: "Attribution License",
		},
		{
			URL:  coco.String("http://creativecommons.org/licenses/by-nc/4.0/"),
			ID:   2,
			Name: "Attribution-NonCommercial License",
		},
	}
}

// Categories returns the first n catalog kinds as COCO categories.
func Categories(n int) []coco.Category {
	kinds := shapes.Catalog(n)
	cats := make([]coco.Category, len(kinds))
	for i, k := range kinds {
		cats[i] = coco.Category{
			ID:            k.CategoryID(),
			Name:          k.Name(),
			Supercategory: coco.String(shapes.Supercategory),
		}
	}
	return cats
}

// annotationFor turns a placed part into an annotation. Every polygon of the
// part becomes one segmentation entry, primary first.
func annotationFor(id, imageID int64, p placement.Part) coco.Annotation {
	polys := p.Polygons()
	seg := make([][]float64, len(polys))
	for i, poly := range polys {
		seg[i] = append([]float64(nil), poly...)
	}
	return coco.Annotation{
		ID:           id,
		ImageID:      imageID,
		CategoryID:   p.Shape.CategoryID,
		Segmentation: seg,
		Area:         p.Area,
		BBox:         p.BBox.Slice(),
		IsCrowd:      0,
	}
}

// option is the per-annotation metadata payload. Field order is the
// serialized member order.
type option struct {
	Detection struct {
		Confidence float64 `json:"confidence"`
		Model      struct {
			Name       string `json:"name"`
			Version    string `json:"version"`
			Parameters struct {
				Threshold    float64 `json:"threshold"`
				NMSThreshold float64 `json:"nms_threshold"`
			} `json:"parameters"`
		} `json:"model"`
	} `json:"detection"`
	Metadata struct {
		Annotator string `json:"annotator"`
		Timestamp string `json:"timestamp"`
		Quality   struct {
			Score    float64 `json:"score"`
			Verified bool    `json:"verified"`
			Notes    string  `json:"notes"`
		} `json:"quality"`
	} `json:"metadata"`
	Custom struct {
		Difficulty string `json:"difficulty"`
		Visibility struct {
			Percentage float64 `json:"percentage"`
			Occlusion  bool    `json:"occlusion"`
		} `json:"visibility"`
	} `json:"custom"`
}

var difficulties = [...]string{"easy", "medium", "hard"}

// newOption draws a randomized option payload.
func newOption(rng shapes.Rand, now time.Time) (jsontext.Value, error) {
	var o option
	o.Detection.Confidence = 0.5 + 0.5*rng.Float64()
	o.Detection.Model.Name = "sample_model"
	o.Detection.Model.Version = "1.0.0"
	o.Detection.Model.Parameters.Threshold = 0.5
	o.Detection.Model.Parameters.NMSThreshold = 0.4

	o.Metadata.Annotator = "system"
	o.Metadata.Timestamp = now.Format(time.RFC3339)
	o.Metadata.Quality.Score = 0.6 + 0.4*rng.Float64()
	o.Metadata.Quality.Verified = rng.Float64() < 0.7
	o.Metadata.Quality.Notes = fmt.Sprintf("Generated annotation %d", 1000+rng.IntN(8999))

	o.Custom.Difficulty = difficulties[rng.IntN(len(difficulties))]
	o.Custom.Visibility.Percentage = 0.3 + 0.7*rng.Float64()
	o.Custom.Visibility.Occlusion = rng.Float64() < 0.3

	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotation option: %w", err)
	}
	return jsontext.Value(b), nil
}
