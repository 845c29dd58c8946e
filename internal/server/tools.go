package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func ratioProperty(description string, def float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"minimum":     0,
		"maximum":     1,
		"description": description,
		"default":     def,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Generation
		{
			Name:        "generate_sample_data",
			Description: "Render synthetic images of colored shapes and write a matching COCO annotation file, optionally with a derived pair file for comparison testing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Image height in pixels",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the generated files. Created if missing",
					},
					"image_count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of images (max 10)",
						"default":     1,
					},
					"class_count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of shape categories (max 10)",
						"default":     4,
					},
					"annotation_count": map[string]interface{}{
						"type":        "integer",
						"description": "Shapes requested per image (max 10000)",
						"default":     10,
					},
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Prefix of every output file",
						"default":     "sample",
					},
					"max_object_size": map[string]interface{}{
						"type":        "integer",
						"description": "Largest shape size in pixels, limited to half the smaller image side",
						"default":     80,
					},
					"allow_overlap": map[string]interface{}{
						"type":        "boolean",
						"description": "Allow shape bounding boxes to overlap",
						"default":     true,
					},
					"include_licenses": map[string]interface{}{
						"type":        "boolean",
						"description": "Add license records and assign one to each image",
						"default":     false,
					},
					"include_option": map[string]interface{}{
						"type":        "boolean",
						"description": "Attach a randomized option object (confidence, quality, visibility) to each annotation",
						"default":     false,
					},
					"include_multi_polygon": map[string]interface{}{
						"type":        "boolean",
						"description": "Occasionally add small extra polygons to an annotation",
						"default":     false,
					},
					"include_pair_json": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write a derived {filename}-pair.json",
						"default":     false,
					},
					"change_pair_category_names": map[string]interface{}{
						"type":        "boolean",
						"description": "Append _pair to category names in the pair file",
						"default":     false,
					},
					"max_pair_matches": map[string]interface{}{
						"type":        "integer",
						"description": "Largest number of pair annotations derived from one original",
						"default":     3,
					},
					"pair_perfect_match_ratio": ratioProperty("Share of annotations copied exactly", 0.5),
					"pair_partial_match_ratio": ratioProperty("Share of annotations copied with a shifted position", 0.2),
					"pair_no_match_ratio":      ratioProperty("Share of annotations left out of the pair file", 0.1),
					"pair_additional_ratio":    ratioProperty("Unrelated rectangles to add, as a share of the annotation count", 0.1),
					"color_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"category", "gray"},
						"description": "Paint each category its own hue, or every shape neutral gray",
						"default":     "category",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed for reproducible output",
					},
				},
				"required": []string{"width", "height", "output_dir"},
			},
		},

		// Annotation files
		{
			Name:        "load_annotations",
			Description: "Read and validate a COCO annotation file and summarize its images, annotations and categories.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the COCO JSON file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "annotation_crop",
			Description: "Crop the bounding box of one annotation out of its image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the COCO JSON file",
					},
					"annotation_id": map[string]interface{}{
						"type":        "integer",
						"description": "Id of the annotation to crop",
					},
					"image_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory holding the images. Defaults to the annotation file's directory",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Extra pixels around the bounding box",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"annotation_path", "annotation_id"},
			},
		},

		// Images
		{
			Name:        "load_image",
			Description: "Read an image file and return its dimensions, format and base64-encoded bytes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
