package server

import "github.com/ironsheep/wallpaperer/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file",
	}
}

// samplerProperties are shared by every tool that may detect a background.
func samplerProperties() map[string]interface{} {
	return map[string]interface{}{
		"simple": map[string]interface{}{
			"type":        "boolean",
			"description": "Vote between the four corner pixels only. Fast on very large images, less accurate.",
			"default":     false,
		},
		"dont_ignore": map[string]interface{}{
			"type":        "boolean",
			"description": "Count border sides that are a single solid color. By default they are skipped as foreground running off the edge.",
			"default":     false,
		},
		"tolerance": map[string]interface{}{
			"type":        "integer",
			"description": "Per-channel difference (0-255) under which two border colors are counted together. Default 0 (exact).",
			"default":     0,
		},
	}
}

// wallpaperProperties describes the inputs of wallpaper_preview and
// wallpaper_generate.
func wallpaperProperties() map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"position": map[string]interface{}{
			"type":        "string",
			"enum":        imaging.AnchorNames(),
			"description": "Where to place the image on the canvas. Default center.",
			"default":     "center",
		},
		"size": map[string]interface{}{
			"type":        "string",
			"description": "Canvas size: WIDTHxHEIGHT or a preset name (see wallpaper_list_sizes). Default is the source size.",
		},
		"color": map[string]interface{}{
			"type":        "string",
			"description": "Canvas color as #RRGGBB, #RGB or a color name. Skips background detection.",
		},
		"rotate": map[string]interface{}{
			"type":        "number",
			"description": "Clockwise rotation in degrees applied before scaling.",
			"default":     0,
		},
		"scale_rel_image": map[string]interface{}{
			"type":        "number",
			"description": "Scale factor relative to the source image size. Exclusive with scale_rel_canvas.",
		},
		"scale_rel_canvas": map[string]interface{}{
			"type":        "number",
			"description": "Foreground height as a fraction of the canvas height. Exclusive with scale_rel_image.",
		},
		"dont_crop": map[string]interface{}{
			"type":        "boolean",
			"description": "Keep a foreground larger than the canvas at full size and clip it instead of shrinking it.",
			"default":     false,
		},
	}
	for k, v := range samplerProperties() {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	previewProps := wallpaperProperties()
	previewProps["max_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Downscale the returned preview to at most this width. Default 0 (full size).",
		"default":     0,
	}

	generateProps := wallpaperProperties()
	generateProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path of the file to write (.png, .jpg or .bmp)",
	}
	generateProps["quality"] = map[string]interface{}{
		"type":        "integer",
		"description": "JPEG quality 1-100. Default 95.",
		"default":     95,
	}

	detectProps := samplerProperties()
	detectProps["path"] = pathProperty()

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has transparency.",
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

		// Geometry
		{
			Name:        "wallpaper_list_sizes",
			Description: "List the named canvas size presets and their dimensions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "wallpaper_resolve_size",
			Description: "Resolve a size token (preset name or WIDTHxHEIGHT) to pixel dimensions. With no size, the source image size is used.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"size": map[string]interface{}{
						"type":        "string",
						"description": "Preset name or WIDTHxHEIGHT",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional source image, used when size is empty",
					},
				},
			},
		},

		// Color
		{
			Name:        "wallpaper_detect_background",
			Description: "Detect the background color of an image from its border pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProps,
				"required":   []string{"path"},
			},
		},

		// Wallpaper
		{
			Name:        "wallpaper_preview",
			Description: "Build a wallpaper and return it as base64-encoded PNG without writing a file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": previewProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "wallpaper_generate",
			Description: "Build a wallpaper and write it to the output file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": generateProps,
				"required":   []string{"path", "output"},
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
