package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/favicon-tools-mcp/internal/favicon"
	"github.com/ironsheep/favicon-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "favicon_generate").
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Source Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_color_census":
		return s.handleImageColorCensus(args)

	// Favicon Pipeline
	case "logo_analyze":
		return s.handleLogoAnalyze(args)
	case "favicon_preview":
		return s.handleFaviconPreview(args)
	case "favicon_generate":
		return s.handleFaviconGenerate(args)
	case "favicon_presets":
		return s.handleFaviconPresets()

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Source Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path            string `json:"path"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
	DominanceMargin *int   `json:"dominance_margin,omitempty"`
	AlphaCutoff     *int   `json:"alpha_cutoff,omitempty"`
}

// SampleColorResult pairs a sampled color with the class the pipeline
// would give it.
type SampleColorResult struct {
	X     int                  `json:"x"`
	Y     int                  `json:"y"`
	Color *imaging.ColorResult `json:"color"`
	Class string               `json:"class"`
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
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	classifier := favicon.DefaultConfig().Classifier()
	if a.DominanceMargin != nil {
		classifier.DominanceMargin = *a.DominanceMargin
	}
	if a.AlphaCutoff != nil {
		classifier.AlphaCutoff = *a.AlphaCutoff
	}
	class := classifier.Classify(c.RGBA.NRGBA())

	return &SampleColorResult{X: a.X, Y: a.Y, Color: c, Class: class.String()}, nil
}

type imageColorCensusArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) handleImageColorCensus(args json.RawMessage) (interface{}, error) {
	var a imageColorCensusArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 20
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ColorCensus(img, a.Count), nil
}

// === Favicon Pipeline Handlers ===
//
// Pipeline tools take a config document as their arguments: an optional
// "preset" plus any Config field, e.g.
//
//	{"preset": "shield", "source_path": "/in/logo.png", "output_dir": "/out"}

// LogoAnalyzeResult reports how a classifier splits a source image.
type LogoAnalyzeResult struct {
	Path            string        `json:"path"`
	DominanceMargin int           `json:"dominance_margin"`
	AlphaCutoff     int           `json:"alpha_cutoff"`
	Stats           favicon.Stats `json:"stats"`
}

func (s *Server) handleLogoAnalyze(args json.RawMessage) (interface{}, error) {
	cfg, err := favicon.ParseConfig(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	return &LogoAnalyzeResult{
		Path:            cfg.SourcePath,
		DominanceMargin: cfg.DominanceMargin,
		AlphaCutoff:     cfg.AlphaCutoff,
		Stats:           favicon.Analyze(img, cfg.Classifier()),
	}, nil
}

type faviconPreviewArgs struct {
	MaxSize *int `json:"max_size,omitempty"`
}

// FaviconPreviewResult carries an inline render of the composited image.
type FaviconPreviewResult struct {
	Stats   favicon.Stats         `json:"stats"`
	Preview *imaging.EncodedImage `json:"preview"`
}

func (s *Server) handleFaviconPreview(args json.RawMessage) (interface{}, error) {
	var a faviconPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	maxSize := 256
	if a.MaxSize != nil {
		maxSize = *a.MaxSize
	}

	cfg, err := favicon.ParseConfig(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	out, stats, err := favicon.Process(img, cfg)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.EncodePreview(out, maxSize)
	if err != nil {
		return nil, err
	}
	return &FaviconPreviewResult{Stats: stats, Preview: preview}, nil
}

func (s *Server) handleFaviconGenerate(args json.RawMessage) (interface{}, error) {
	cfg, err := favicon.ParseConfig(args)
	if err != nil {
		return nil, err
	}
	// The source may have changed on disk since it was last inspected.
	s.cache.Evict(cfg.SourcePath)
	return favicon.Run(cfg, s.cache, s.logger)
}

func (s *Server) handleFaviconPresets() (interface{}, error) {
	out := make(map[string]favicon.Config)
	for _, name := range favicon.PresetNames() {
		cfg, err := favicon.Preset(name)
		if err != nil {
			return nil, err
		}
		out[name] = cfg
	}
	return out, nil
}
