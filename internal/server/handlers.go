package server

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ironsheep/wallpaperer/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "wallpaper_generate").
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
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Geometry
	case "wallpaper_list_sizes":
		return s.handleListSizes(args)
	case "wallpaper_resolve_size":
		return s.handleResolveSize(args)

	// Color
	case "wallpaper_detect_background":
		return s.handleDetectBackground(args)

	// Wallpaper
	case "wallpaper_preview":
		return s.handlePreview(args)
	case "wallpaper_generate":
		return s.handleGenerate(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

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

// === Geometry Handlers ===

type namedSize struct {
	Name string `json:"name"`
	imaging.Size
}

type listSizesResult struct {
	Sizes []namedSize `json:"sizes"`
}

func (s *Server) handleListSizes(_ json.RawMessage) (interface{}, error) {
	presets := imaging.Presets()
	sizes := make([]namedSize, 0, len(presets))
	for name, size := range presets {
		sizes = append(sizes, namedSize{Name: name, Size: size})
	}
	sort.Slice(sizes, func(i, j int) bool {
		return sizes[i].Name < sizes[j].Name
	})
	return &listSizesResult{Sizes: sizes}, nil
}

type resolveSizeArgs struct {
	Size string `json:"size"`
	Path string `json:"path"`
}

func (s *Server) handleResolveSize(args json.RawMessage) (interface{}, error) {
	var a resolveSizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var fallback imaging.Size
	if a.Path != "" {
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		fallback = imaging.SizeOf(img)
	} else if a.Size == "" {
		return nil, fmt.Errorf("either size or path is required")
	}

	size, err := imaging.ResolveSize(a.Size, fallback)
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// === Color Handlers ===

type samplerArgs struct {
	Simple     bool `json:"simple"`
	DontIgnore bool `json:"dont_ignore"`
	Tolerance  int  `json:"tolerance"`
}

func (a samplerArgs) options() (imaging.SamplerOptions, error) {
	if a.Tolerance < 0 || a.Tolerance > 255 {
		return imaging.SamplerOptions{}, fmt.Errorf("tolerance must be within 0-255, got %d", a.Tolerance)
	}
	opts := imaging.DefaultSamplerOptions()
	if a.Simple {
		opts.Mode = imaging.Simple
	}
	opts.KeepCoveredEdges = a.DontIgnore
	opts.Tolerance = uint8(a.Tolerance)
	return opts, nil
}

type detectBackgroundArgs struct {
	Path string `json:"path"`
	samplerArgs
}

func (s *Server) handleDetectBackground(args json.RawMessage) (interface{}, error) {
	var a detectBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DetectBackground(img, opts)
}

// === Wallpaper Handlers ===

type wallpaperArgs struct {
	Path           string  `json:"path"`
	Position       string  `json:"position"`
	Size           string  `json:"size"`
	Color          string  `json:"color"`
	Rotate         float64 `json:"rotate"`
	ScaleRelImage  float64 `json:"scale_rel_image"`
	ScaleRelCanvas float64 `json:"scale_rel_canvas"`
	DontCrop       bool    `json:"dont_crop"`
	samplerArgs
}

func (a wallpaperArgs) options() (imaging.Options, error) {
	opts := imaging.DefaultOptions()
	opts.Size = a.Size

	if a.Position != "" {
		anchor, err := imaging.ParseAnchor(a.Position)
		if err != nil {
			return opts, err
		}
		opts.Anchor = anchor
	}

	if a.Color != "" {
		c, err := imaging.ParseColor(a.Color)
		if err != nil {
			return opts, err
		}
		opts.Color = &c
	}

	sampler, err := a.samplerArgs.options()
	if err != nil {
		return opts, err
	}
	opts.Sampler = sampler

	opts.Transform = imaging.TransformOptions{
		Rotation:       a.Rotate,
		ScaleRelImage:  a.ScaleRelImage,
		ScaleRelCanvas: a.ScaleRelCanvas,
		NoCrop:         a.DontCrop,
	}
	return opts, nil
}

func (s *Server) generate(a wallpaperArgs) (*imaging.Result, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Generate(img, opts)
}

type previewArgs struct {
	wallpaperArgs
	MaxWidth int `json:"max_width"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.generate(a.wallpaperArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(res, a.MaxWidth)
}

type generateArgs struct {
	wallpaperArgs
	Output  string `json:"output"`
	Quality int    `json:"quality"`
}

// GenerateResult describes a wallpaper written to disk.
type GenerateResult struct {
	Output     string              `json:"output"`
	Canvas     imaging.Size        `json:"canvas"`
	Foreground imaging.Size        `json:"foreground"`
	OffsetX    int                 `json:"offset_x"`
	OffsetY    int                 `json:"offset_y"`
	Background imaging.ColorResult `json:"background"`
	Detected   bool                `json:"detected"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	res, err := s.generate(a.wallpaperArgs)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(a.Output, res.Image, a.Quality); err != nil {
		return nil, err
	}
	return &GenerateResult{
		Output:     a.Output,
		Canvas:     res.Canvas,
		Foreground: res.Foreground,
		OffsetX:    res.Offset.X,
		OffsetY:    res.Offset.Y,
		Background: *imaging.NewColorResult(res.Background),
		Detected:   res.Detected != nil,
	}, nil
}
