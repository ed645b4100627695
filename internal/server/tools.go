package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var deviceTypeSchema = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"iphone", "ipad", "mac", "watch"},
	"description": "Device family. Classified from the screenshot size when omitted.",
}

var captionStyleSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"font":           map[string]interface{}{"type": "string", "description": "Bundled font (regular, medium, bold, mono) or path to a TTF/OTF file. Default bold"},
		"font_size":      map[string]interface{}{"type": "number", "description": "Font size in pixels (default 72)"},
		"color":          map[string]interface{}{"type": "string", "description": "Text color as hex (default #FFFFFF)"},
		"position":       map[string]interface{}{"type": "string", "enum": []string{"above", "overlay"}},
		"padding_top":    map[string]interface{}{"type": "integer"},
		"padding_bottom": map[string]interface{}{"type": "integer"},
		"padding_x":      map[string]interface{}{"type": "integer"},
		"box":            captionBoxSchema,
	},
	"description": "Caption style. Omitted fields use the defaults.",
}

var captionBoxSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"auto_size":   map[string]interface{}{"type": "boolean", "description": "Size the box from the wrapped text (default true)"},
		"min_height":  map[string]interface{}{"type": "integer"},
		"max_height":  map[string]interface{}{"type": "integer"},
		"max_lines":   map[string]interface{}{"type": "integer", "description": "Line limit when auto_size is false (default 3)"},
		"line_height": map[string]interface{}{"type": "number", "description": "Line height as a multiple of the font size (default 1.2)"},
	},
}

var composeProperties = map[string]interface{}{
	"screenshot_path": map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the app screenshot",
	},
	"frame": map[string]interface{}{
		"type":        "string",
		"description": "Registered frame name to use. Matched automatically when omitted",
	},
	"frame_path": map[string]interface{}{
		"type":        "string",
		"description": "Optional bezel PNG replacing the artwork of 'frame'",
	},
	"device_type": deviceTypeSchema,
	"auto_frame": map[string]interface{}{
		"type":        "boolean",
		"description": "Match a frame when 'frame' is omitted (default true). False composes unframed",
		"default":     true,
	},
	"preferred_frame": map[string]interface{}{
		"type":        "string",
		"description": "Frame to try first when matching",
	},
	"caption": map[string]interface{}{
		"type":        "string",
		"description": "Marketing caption drawn above the device",
	},
	"style": captionStyleSchema,
	"background": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"image_path": map[string]interface{}{"type": "string", "description": "Background picture"},
			"fit":        map[string]interface{}{"type": "string", "enum": []string{"cover", "contain", "fill", "scale-down"}},
			"gradient": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"stops": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"color":    map[string]interface{}{"type": "string"},
								"position": map[string]interface{}{"type": "number", "description": "0.0 to 1.0"},
							},
						},
					},
					"angle": map[string]interface{}{"type": "number", "description": "CSS angle in degrees (default 180, top to bottom)"},
				},
			},
			"color": map[string]interface{}{"type": "string", "description": "Solid color as hex"},
		},
		"description": "Background layer. Default is a purple gradient",
	},
	"overrides": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"frame_position":   map[string]interface{}{"description": "top, center, bottom or 0-100"},
			"frame_scale":      map[string]interface{}{"type": "number", "description": "Replaces the device scale multiplier"},
			"partial_frame":    map[string]interface{}{"type": "boolean", "description": "Show only the top of the device"},
			"frame_offset":     map[string]interface{}{"type": "number", "description": "Percent of the frame cut from the bottom (default 25)"},
			"caption_position": map[string]interface{}{"type": "string", "enum": []string{"above", "overlay"}},
			"caption_size":     map[string]interface{}{"type": "number"},
			"caption_font":     map[string]interface{}{"type": "string"},
			"caption_box":      captionBoxSchema,
		},
		"description": "Device-specific settings layered over style",
	},
	"output_width": map[string]interface{}{
		"type":        "integer",
		"description": "Canvas width. Defaults to the screenshot width",
	},
	"output_height": map[string]interface{}{
		"type":        "integer",
		"description": "Canvas height. Defaults to the screenshot height",
	},
	"resolution": map[string]interface{}{
		"type":        "string",
		"description": "Canvas size as WIDTHxHEIGHT, e.g. 1290x2796. Used when output_width/output_height are omitted",
	},
	"output_path": map[string]interface{}{
		"type":        "string",
		"description": "Where to write the PNG. When omitted the image is returned as base64",
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Frame Registry
		{
			Name:        "frames_list",
			Description: "List the registered device frames, optionally filtered by device type and orientation. Reports whether the project manifest or the bundled table is in use.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"device_type": deviceTypeSchema,
					"orientation": map[string]interface{}{
						"type": "string",
						"enum": []string{"portrait", "landscape"},
					},
				},
			},
		},
		{
			Name:        "frame_match",
			Description: "Pick the device frame for a screenshot: preferred frame, exact known resolution, exact screen size, then nearest aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot. Alternative to width/height",
					},
					"width":           map[string]interface{}{"type": "integer", "description": "Screenshot width in pixels"},
					"height":          map[string]interface{}{"type": "integer", "description": "Screenshot height in pixels"},
					"device_type":     deviceTypeSchema,
					"preferred_frame": map[string]interface{}{"type": "string", "description": "Frame to try first"},
				},
			},
		},
		{
			Name:        "screenshot_classify",
			Description: "Read a screenshot's size and format and classify its orientation and device type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "frame_detect_cutout",
			Description: "Find the transparent screen opening of a bezel PNG by flood fill from its center.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the bezel PNG",
					},
					"alpha_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels with alpha below this are part of the opening (default 32)",
						"default":     32,
					},
				},
				"required": []string{"path"},
			},
		},

		// Captions
		{
			Name:        "caption_layout",
			Description: "Wrap a caption and size its box for a canvas without rendering anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text":           map[string]interface{}{"type": "string"},
					"canvas_width":   map[string]interface{}{"type": "integer"},
					"canvas_height":  map[string]interface{}{"type": "integer"},
					"style":          captionStyleSchema,
					"device_top":     map[string]interface{}{"type": "integer", "description": "Top of the device on the canvas, if known"},
					"device_height":  map[string]interface{}{"type": "integer", "description": "Scaled device height, if known"},
					"frame_position": map[string]interface{}{"type": "string", "description": "top, center, bottom or 0-100"},
				},
				"required": []string{"text", "canvas_width", "canvas_height"},
			},
		},
		{
			Name:        "caption_verify",
			Description: "OCR the caption band of a composed image and report how many caption words were read back.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the composed image",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The caption that was drawn",
					},
					"caption_height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the caption band from the top. Whole image when omitted",
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Explicit region to OCR. Overrides caption_height",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "OCR language (default 'eng')",
						"default":     "eng",
					},
				},
				"required": []string{"path", "text"},
			},
		},

		// Composition
		{
			Name:        "compose_screenshot",
			Description: "Compose an App Store marketing image: background, framed screenshot and caption.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": composeProperties,
				"required":   []string{"screenshot_path"},
			},
		},
		{
			Name:        "compose_batch",
			Description: "Compose several marketing images concurrently. One failure does not stop the others; results keep request order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"items": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":       "object",
							"properties": composeProperties,
							"required":   []string{"screenshot_path"},
						},
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum concurrent compositions (default: server setting)",
					},
				},
				"required": []string{"items"},
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
