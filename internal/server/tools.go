package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// extractionProperties returns the schema properties shared by the palette
// extraction tools.
func extractionProperties() map[string]interface{} {
	return map[string]interface{}{
		"notation": map[string]interface{}{
			"type":        "string",
			"description": "Output notation: hex, rgb, cmyk or hsl (case-insensitive). Unknown values fall back to hex. Default hex",
			"default":     "hex",
		},
		"alpha_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"strict", "permissive"},
			"description": "strict rejects images with an alpha channel; permissive ignores alpha. Default strict",
			"default":     "strict",
		},
		"strategy": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"histogram", "kmeans", "single"},
			"description": "Clustering algorithm. histogram is deterministic; kmeans and single are cross-checks. Default histogram",
			"default":     "histogram",
		},
		"max_sample_area": map[string]interface{}{
			"type":        "number",
			"description": "Maximum number of pixels sampled; 0 samples every pixel. Default 59536 (244x244)",
		},
		"merge_threshold": map[string]interface{}{
			"type":        "number",
			"description": "RGB distance (0 to ~1.73) below which clusters merge; 0 disables merging. Default 0",
		},
		"max_colors": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum palette entries returned; 0 returns all. Default 0",
		},
		"clusters": map[string]interface{}{
			"type":        "integer",
			"description": "Cluster count for the kmeans strategy. Default 3",
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region to restrict extraction (x2, y2 exclusive)",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"smooth_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before clustering to suppress noise. Default 0 (none)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	extract := extractionProperties()
	extract["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	extract["image_base64"] = map[string]interface{}{
		"type":        "string",
		"description": "Base64-encoded image bytes (a data: URL prefix is accepted). Use instead of path",
	}

	extractURL := extractionProperties()
	extractURL["url"] = map[string]interface{}{
		"type":        "string",
		"description": "http or https URL of the image",
	}

	return []Tool{
		// Palette Extraction
		{
			Name:        "palette_extract",
			Description: "Extract the dominant colors of an image, most dominant first. Provide either path or image_base64.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": extract,
			},
		},
		{
			Name:        "palette_extract_url",
			Description: "Fetch an image over HTTP(S) and extract its dominant colors, most dominant first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": extractURL,
				"required":   []string{"url"},
			},
		},

		// Color Utilities
		{
			Name:        "color_convert",
			Description: "Format one color in hex, rgb, cmyk or hsl notation, or all four with notation \"all\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as #RRGGBB or #RGB. Use instead of r, g, b",
					},
					"r": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"g": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"b": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"notation": map[string]interface{}{
						"type":        "string",
						"description": "hex, rgb, cmyk, hsl or all. Default all",
						"default":     "all",
					},
				},
			},
		},
		{
			Name:        "palette_swatch",
			Description: "Render colors as a strip of square tiles and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Colors as #RRGGBB, left to right",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Tile edge length in pixels (default 64, max 512)",
						"default":     64,
					},
				},
				"required": []string{"colors"},
			},
		},

		// Image Information
		{
			Name:        "image_info",
			Description: "Get the dimensions, format, color depth and alpha presence of an image file.",
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
