package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/coco-sample-mcp/internal/coco"
	"github.com/ironsheep/coco-sample-mcp/internal/generator"
	"github.com/ironsheep/coco-sample-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "generate_sample_data", "annotation_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Generation
	case "generate_sample_data":
		return s.handleGenerateSampleData(args)

	// Annotation files
	case "load_annotations":
		return s.handleLoadAnnotations(args)
	case "annotation_crop":
		return s.handleAnnotationCrop(args)

	// Images
	case "load_image":
		return s.handleLoadImage(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Generation ===

func (s *Server) handleGenerateSampleData(args json.RawMessage) (interface{}, error) {
	var cfg generator.Config
	if err := json.Unmarshal(args, &cfg); err != nil {
		return nil, err
	}
	res, err := s.gen.Generate(cfg)
	if err != nil {
		return nil, err
	}
	// Regenerated files may reuse cached paths
	for _, name := range res.ImageFiles {
		s.cache.Evict(filepath.Join(res.OutputDir, name))
	}
	return res, nil
}

// === Annotation Files ===

type pathArgs struct {
	Path string `json:"path"`
}

// CategoryCount is the number of annotations per category.
type CategoryCount struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnnotationSummary describes a loaded annotation file.
type AnnotationSummary struct {
	Path        string          `json:"path"`
	Images      int             `json:"images"`
	Annotations int             `json:"annotations"`
	Licenses    int             `json:"licenses"`
	Description string          `json:"description,omitempty"`
	Categories  []CategoryCount `json:"categories"`
}

func summarize(path string, ds *coco.Dataset) *AnnotationSummary {
	counts := make(map[int]int, len(ds.Categories))
	for _, a := range ds.Annotations {
		counts[a.CategoryID]++
	}

	sum := &AnnotationSummary{
		Path:        path,
		Images:      len(ds.Images),
		Annotations: len(ds.Annotations),
		Licenses:    len(ds.Licenses),
		Categories:  make([]CategoryCount, 0, len(ds.Categories)),
	}
	if ds.Info != nil && ds.Info.Description != nil {
		sum.Description = *ds.Info.Description
	}
	for _, c := range ds.Categories {
		sum.Categories = append(sum.Categories, CategoryCount{ID: c.ID, Name: c.Name, Count: counts[c.ID]})
	}
	return sum
}

func (s *Server) handleLoadAnnotations(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ds, err := coco.LoadFile(a.Path)
	if err != nil {
		return nil, err
	}
	return summarize(a.Path, ds), nil
}

type annotationCropArgs struct {
	AnnotationPath string  `json:"annotation_path"`
	AnnotationID   int64   `json:"annotation_id"`
	ImageDir       string  `json:"image_dir"`
	Padding        int     `json:"padding"`
	Scale          float64 `json:"scale"`
}

// AnnotationCrop is a cropped preview of one annotation.
type AnnotationCrop struct {
	AnnotationID int64     `json:"annotation_id"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	ImagePath    string    `json:"image_path"`
	BBox         []float64 `json:"bbox"`
	*imaging.CropResult
}

func (s *Server) handleAnnotationCrop(args json.RawMessage) (interface{}, error) {
	var a annotationCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.ImageDir == "" {
		a.ImageDir = filepath.Dir(a.AnnotationPath)
	}

	ds, err := coco.LoadFile(a.AnnotationPath)
	if err != nil {
		return nil, err
	}

	var ann *coco.Annotation
	for i := range ds.Annotations {
		if ds.Annotations[i].ID == a.AnnotationID {
			ann = &ds.Annotations[i]
			break
		}
	}
	if ann == nil {
		return nil, fmt.Errorf("annotation %d not found", a.AnnotationID)
	}

	imgEntry, ok := ds.ImageByID(ann.ImageID)
	if !ok {
		return nil, fmt.Errorf("image %d for annotation %d not found", ann.ImageID, ann.ID)
	}
	if imgEntry.FileName == "" {
		return nil, errors.New("image entry has no file_name")
	}

	imgPath := filepath.Join(a.ImageDir, imgEntry.FileName)
	img, err := s.cache.Load(imgPath)
	if err != nil {
		return nil, err
	}

	crop, err := imaging.CropBBox(img, ann.BBox, a.Padding, a.Scale)
	if err != nil {
		return nil, err
	}

	out := &AnnotationCrop{
		AnnotationID: ann.ID,
		CategoryID:   ann.CategoryID,
		ImagePath:    imgPath,
		BBox:         ann.BBox,
		CropResult:   crop,
	}
	for _, c := range ds.Categories {
		if c.ID == ann.CategoryID {
			out.CategoryName = c.Name
			break
		}
	}
	return out, nil
}

// === Images ===

// LoadedImage is the result of load_image.
type LoadedImage struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	*imaging.RawImage
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	raw, err := imaging.ReadImageFile(a.Path)
	if err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &LoadedImage{Width: info.Width, Height: info.Height, RawImage: raw}, nil
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
