package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool runs a tools/call request through the request router.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Fatalf("content type: got %v, want text", content[0]["type"])
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

type generateResult struct {
	OutputDir      string   `json:"output_dir"`
	ImageFiles     []string `json:"image_files"`
	AnnotationFile string   `json:"annotation_file"`
	PairFile       string   `json:"pair_file"`
	Annotations    int      `json:"annotations"`
	Seed           uint64   `json:"seed"`
	Message        string   `json:"message"`
	Pair           *struct {
		Output int `json:"output_annotations"`
	} `json:"pair"`
}

func generate(t *testing.T, s *Server, args map[string]interface{}) generateResult {
	t.Helper()
	var res generateResult
	decodeResult(t, callTool(t, s, "generate_sample_data", args), &res)
	return res
}

func TestHandleToolsCall_GenerateSampleData(t *testing.T) {
	s := New()
	dir := t.TempDir()

	res := generate(t, s, map[string]interface{}{
		"width":             200,
		"height":            150,
		"output_dir":        dir,
		"annotation_count":  5,
		"include_pair_json": true,
		"seed":              99,
	})

	if res.AnnotationFile != "sample-annotation.json" {
		t.Errorf("annotation_file: got %s", res.AnnotationFile)
	}
	if res.PairFile != "sample-pair.json" {
		t.Errorf("pair_file: got %s", res.PairFile)
	}
	if res.Seed != 99 {
		t.Errorf("seed: got %d, want 99", res.Seed)
	}
	if res.Annotations != 5 {
		t.Errorf("annotations: got %d, want 5", res.Annotations)
	}
	if res.Pair == nil || res.Pair.Output == 0 {
		t.Error("pair stats missing")
	}
	if !strings.HasPrefix(res.Message, "Sample data generated successfully in "+dir) {
		t.Errorf("message: got %q", res.Message)
	}

	for _, name := range []string{"sample-image.png", "sample-annotation.json", "sample-pair.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestHandleToolsCall_GenerateSampleData_InvalidConfig(t *testing.T) {
	s := New()
	resp := callTool(t, s, "generate_sample_data", map[string]interface{}{
		"width":      0,
		"height":     100,
		"output_dir": t.TempDir(),
	})

	if resp.Error == nil {
		t.Fatal("expected an error for zero width")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "width and height must be positive") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_LoadAnnotations(t *testing.T) {
	s := New()
	dir := t.TempDir()
	gen := generate(t, s, map[string]interface{}{
		"width":            300,
		"height":           300,
		"output_dir":       dir,
		"class_count":      3,
		"annotation_count": 12,
		"seed":             4,
	})

	var sum AnnotationSummary
	decodeResult(t, callTool(t, s, "load_annotations", map[string]interface{}{
		"path": filepath.Join(dir, gen.AnnotationFile),
	}), &sum)

	if sum.Images != 1 {
		t.Errorf("images: got %d, want 1", sum.Images)
	}
	if sum.Annotations != gen.Annotations {
		t.Errorf("annotations: got %d, want %d", sum.Annotations, gen.Annotations)
	}
	if sum.Description != "Sample COCO dataset generated for testing" {
		t.Errorf("description: got %q", sum.Description)
	}
	if len(sum.Categories) != 3 {
		t.Fatalf("categories: got %d, want 3", len(sum.Categories))
	}

	total := 0
	for i, c := range sum.Categories {
		if c.ID != i+1 {
			t.Errorf("category %d id: got %d", i, c.ID)
		}
		total += c.Count
	}
	if total != sum.Annotations {
		t.Errorf("category counts sum to %d, want %d", total, sum.Annotations)
	}
}

func TestHandleToolsCall_LoadAnnotations_Errors(t *testing.T) {
	s := New()
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	os.WriteFile(badJSON, []byte(`{"images": [`), 0o644)

	noImages := filepath.Join(dir, "empty.json")
	os.WriteFile(noImages, []byte(`{"images": [], "annotations": [], "categories": [{"id": 1, "name": "a"}]}`), 0o644)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.json"), "file not found"},
		{"invalid json", badJSON, "failed to parse JSON"},
		{"no images", noImages, "no images found in COCO data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "load_annotations", map[string]interface{}{"path": tt.path})
			if resp.Error == nil {
				t.Fatal("expected an error")
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, tt.want) {
				t.Errorf("Error data: got %q, want it to contain %q", data, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_AnnotationCrop(t *testing.T) {
	s := New()
	dir := t.TempDir()
	gen := generate(t, s, map[string]interface{}{
		"width":      200,
		"height":     200,
		"output_dir": dir,
		"seed":       12,
	})

	var crop struct {
		AnnotationID int64     `json:"annotation_id"`
		CategoryName string    `json:"category_name"`
		ImagePath    string    `json:"image_path"`
		BBox         []float64 `json:"bbox"`
		Width        int       `json:"width"`
		Height       int       `json:"height"`
		ImageBase64  string    `json:"image_base64"`
		MimeType     string    `json:"mime_type"`
	}
	decodeResult(t, callTool(t, s, "annotation_crop", map[string]interface{}{
		"annotation_path": filepath.Join(dir, gen.AnnotationFile),
		"annotation_id":   1,
		"padding":         2,
	}), &crop)

	if crop.AnnotationID != 1 {
		t.Errorf("annotation_id: got %d", crop.AnnotationID)
	}
	if crop.CategoryName == "" {
		t.Error("category_name should be set")
	}
	if crop.ImagePath != filepath.Join(dir, "sample-image.png") {
		t.Errorf("image_path: got %s", crop.ImagePath)
	}
	if crop.Width <= 0 || crop.Height <= 0 {
		t.Errorf("crop size: got %dx%d", crop.Width, crop.Height)
	}
	if crop.MimeType != "image/png" || crop.ImageBase64 == "" {
		t.Errorf("crop image missing: mime %q, %d base64 chars", crop.MimeType, len(crop.ImageBase64))
	}
	if len(crop.BBox) != 4 {
		t.Errorf("bbox: got %v", crop.BBox)
	}
}

func TestHandleToolsCall_AnnotationCrop_UnknownID(t *testing.T) {
	s := New()
	dir := t.TempDir()
	gen := generate(t, s, map[string]interface{}{
		"width": 100, "height": 100, "output_dir": dir, "annotation_count": 2, "seed": 1,
	})

	resp := callTool(t, s, "annotation_crop", map[string]interface{}{
		"annotation_path": filepath.Join(dir, gen.AnnotationFile),
		"annotation_id":   999,
	})
	if resp.Error == nil {
		t.Fatal("expected an error for an unknown annotation")
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "annotation 999 not found") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_LoadImage(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var img struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Path        string `json:"path"`
		Format      string `json:"format"`
		SizeBytes   int    `json:"size_bytes"`
		ImageBase64 string `json:"image_base64"`
	}
	decodeResult(t, callTool(t, s, "load_image", map[string]interface{}{"path": imgPath}), &img)

	if img.Width != 100 || img.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", img.Width, img.Height)
	}
	if img.Format != "png" || img.Path != imgPath {
		t.Errorf("format/path: got %s %s", img.Format, img.Path)
	}
	if img.SizeBytes <= 0 || img.ImageBase64 == "" {
		t.Error("image bytes missing")
	}
}

func TestHandleToolsCall_LoadImage_NotFound(t *testing.T) {
	s := New()
	resp := callTool(t, s, "load_image", map[string]interface{}{"path": "/nonexistent/image.png"})
	if resp.Error == nil {
		t.Fatal("expected an error for a missing file")
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "image file not found") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{255, 128, 64, 255})

	var c struct {
		Hex string `json:"hex"`
	}
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath, "x": 50, "y": 50,
	}), &c)

	if c.Hex != "#FF8040" {
		t.Errorf("hex: got %s, want #FF8040", c.Hex)
	}
}

func TestHandleToolsCall_RegenerateEvictsCache(t *testing.T) {
	s := New()
	dir := t.TempDir()
	args := map[string]interface{}{
		"width":            120,
		"height":           120,
		"output_dir":       dir,
		"class_count":      1,
		"annotation_count": 3,
		"seed":             21,
	}
	gen := generate(t, s, args)

	// Class 1 is the rectangle; its bbox center is always painted
	var crop struct {
		BBox []float64 `json:"bbox"`
	}
	decodeResult(t, callTool(t, s, "annotation_crop", map[string]interface{}{
		"annotation_path": filepath.Join(dir, gen.AnnotationFile),
		"annotation_id":   1,
	}), &crop)
	x := int(crop.BBox[0] + crop.BBox[2]/2)
	y := int(crop.BBox[1] + crop.BBox[3]/2)
	imgPath := filepath.Join(dir, "sample-image.png")

	var before struct {
		Hex string `json:"hex"`
	}
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": x, "y": y}), &before)
	if before.Hex == "#808080" || before.Hex == "#FFFFFF" {
		t.Fatalf("expected a palette color, got %s", before.Hex)
	}

	args["color_mode"] = "gray"
	generate(t, s, args)

	var after struct {
		Hex string `json:"hex"`
	}
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": x, "y": y}), &after)
	if after.Hex != "#808080" {
		t.Errorf("after regeneration: got %s, want #808080", after.Hex)
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	for _, name := range []string{"generate_sample_data", "load_annotations", "annotation_crop", "load_image", "image_sample_color"} {
		if _, err := s.executeTool(name, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("executeTool(%s) should fail for invalid JSON", name)
		}
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{not json`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602 error, got %+v", resp.Error)
	}
}
