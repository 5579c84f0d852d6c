package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// pipelineProperties describes the config document accepted by the
// favicon pipeline tools.
func pipelineProperties() map[string]interface{} {
	return map[string]interface{}{
		"preset": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"favicon", "shield", "luminance"},
			"description": "Base settings to start from. Default favicon",
		},
		"source_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source logo",
		},
		"strategy": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"binary", "luminance"},
			"description": "binary removes green accents; luminance maps brightness to opacity",
		},
		"dominance_margin": map[string]interface{}{
			"type":        "integer",
			"description": "D in the accent test g > r+D and g > b+D",
		},
		"alpha_cutoff": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels with alpha <= this are treated as transparent",
		},
		"dilation_kernel_size": map[string]interface{}{
			"type":        "integer",
			"description": "Odd edge length of the stroke-thickening window. 1 disables thickening",
		},
		"mask_cutoff": map[string]interface{}{
			"type":        "integer",
			"description": "Thickened mask cells above this are kept. Default 128",
		},
		"alpha_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"opaque", "preserve"},
			"description": "Alpha for kept pixels in the binary strategy",
		},
		"luminance_min": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance strategy: darker pixels are dropped",
		},
		"alpha_boost": map[string]interface{}{
			"type":        "number",
			"description": "Luminance strategy: alpha = min(255, luminance * boost)",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel and whether the favicon pipeline would treat it as accent, content or transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"dominance_margin": map[string]interface{}{
						"type":        "integer",
						"description": "Accent margin to classify with. Default 30",
					},
					"alpha_cutoff": map[string]interface{}{
						"type":        "integer",
						"description": "Transparency gate to classify with. Default 20",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_color_census",
			Description: "Count exact RGBA colors in an image: total pixels, unique colors, alpha distribution and the most common colors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of most common colors to return. Default 20",
						"default":     20,
					},
				},
				"required": []string{"path"},
			},
		},

		// Favicon Pipeline
		{
			Name:        "logo_analyze",
			Description: "Count transparent, accent and content pixels in a logo without writing any files. Use it to tune dominance_margin.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pipelineProperties(),
				"required":   []string{"source_path"},
			},
		},
		{
			Name:        "favicon_preview",
			Description: "Run the white-logo conversion in memory and return the result as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pipelineProperties(), map[string]interface{}{
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Shrink the preview to fit this box. 0 keeps native size. Default 256",
					},
				}),
				"required": []string{"source_path"},
			},
		},
		{
			Name:        "favicon_generate",
			Description: "Convert a logo to white-on-transparent and write logo_white.png, favicon.png, favicon-WxH.png files and favicon.ico to output_dir.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pipelineProperties(), map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write into. Created if missing",
					},
					"target_sizes": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"width":  map[string]interface{}{"type": "integer"},
								"height": map[string]interface{}{"type": "integer"},
							},
						},
						"description": "Sizes written as favicon-WxH.png. Default 32x32, 16x16",
					},
					"icon_sizes": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Square sizes embedded in favicon.ico (max 256). Default 64, 32, 16",
					},
					"export_container": map[string]interface{}{
						"type":        "boolean",
						"description": "Write favicon.ico. Default true",
					},
				}),
				"required": []string{"source_path", "output_dir"},
			},
		},
		{
			Name:        "favicon_presets",
			Description: "List the named pipeline presets and their settings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
