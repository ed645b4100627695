package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/appshot-frames/internal/caption"
	"github.com/ironsheep/appshot-frames/internal/compose"
	"github.com/ironsheep/appshot-frames/internal/detection"
	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "frames_list", "compose_screenshot").
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
// A degraded composition is not an error; its warnings are in the result.
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
	// Frame Registry
	case "frames_list":
		return s.handleFramesList(args)
	case "frame_match":
		return s.handleFrameMatch(args)
	case "screenshot_classify":
		return s.handleScreenshotClassify(args)
	case "frame_detect_cutout":
		return s.handleFrameDetectCutout(args)

	// Captions
	case "caption_layout":
		return s.handleCaptionLayout(args)
	case "caption_verify":
		return s.handleCaptionVerify(args)

	// Composition
	case "compose_screenshot":
		return s.handleComposeScreenshot(args)
	case "compose_batch":
		return s.handleComposeBatch(args)

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

// === Frame Registry Handlers ===

type framesListArgs struct {
	DeviceType  string `json:"device_type"`
	Orientation string `json:"orientation"`
}

type framesListResult struct {
	Source frames.Source  `json:"source"`
	Status outcome.Status `json:"status"`
	// Reason explains a degraded registry load.
	Reason  string               `json:"reason,omitempty"`
	Skipped []string             `json:"skipped,omitempty"`
	Count   int                  `json:"count"`
	Frames  []frames.DeviceFrame `json:"frames"`
}

func (s *Server) handleFramesList(args json.RawMessage) (interface{}, error) {
	var a framesListArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	dt, err := frames.ParseDeviceType(a.DeviceType)
	if err != nil {
		return nil, err
	}
	o, err := parseOrientation(a.Orientation)
	if err != nil {
		return nil, err
	}

	loaded := s.registry
	list := loaded.Value.Registry.Filter(dt, o)
	result := &framesListResult{
		Source: loaded.Value.Source,
		Status: loaded.Status,
		Count:  len(list),
		Frames: list,
	}
	if loaded.Reason != nil {
		result.Reason = loaded.Reason.Error()
	}
	for _, err := range loaded.Value.Skipped {
		result.Skipped = append(result.Skipped, err.Error())
	}
	return result, nil
}

func parseOrientation(s string) (frames.Orientation, error) {
	switch o := frames.Orientation(s); o {
	case "", frames.Portrait, frames.Landscape:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation: %s", s)
}

type frameMatchArgs struct {
	Path           string `json:"path"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	DeviceType     string `json:"device_type"`
	PreferredFrame string `json:"preferred_frame"`
}

func (s *Server) handleFrameMatch(args json.RawMessage) (interface{}, error) {
	var a frameMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path != "" {
		info, err := imaging.ReadImageInfo(a.Path)
		if err != nil {
			return nil, err
		}
		a.Width, a.Height = info.Width, info.Height
	}
	dt, err := frames.ParseDeviceType(a.DeviceType)
	if err != nil {
		return nil, err
	}
	return s.matcher.Match(a.Width, a.Height, dt, a.PreferredFrame)
}

type pathArgs struct {
	Path string `json:"path"`
}

type classifyResult struct {
	*imaging.ImageInfo
	Orientation frames.Orientation `json:"orientation"`
	DeviceType  frames.DeviceType  `json:"device_type,omitempty"`
	// Classified is false when the size fits no device family.
	Classified bool `json:"classified"`
}

func (s *Server) handleScreenshotClassify(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.ReadImageInfo(a.Path)
	if err != nil {
		return nil, err
	}
	dt, ok := frames.ClassifyDeviceType(info.Width, info.Height)
	return &classifyResult{
		ImageInfo:   info,
		Orientation: frames.ClassifyOrientation(info.Width, info.Height),
		DeviceType:  dt,
		Classified:  ok,
	}, nil
}

type detectCutoutArgs struct {
	Path           string `json:"path"`
	AlphaThreshold int    `json:"alpha_threshold"`
}

func (s *Server) handleFrameDetectCutout(args json.RawMessage) (interface{}, error) {
	var a detectCutoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.AlphaThreshold == 0 {
		a.AlphaThreshold = 32
	}
	if a.AlphaThreshold < 1 || a.AlphaThreshold > 255 {
		return nil, fmt.Errorf("alpha_threshold must be 1-255, got %d", a.AlphaThreshold)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cut, err := detection.DetectScreenCutout(img, uint8(a.AlphaThreshold))
	if err != nil {
		return nil, err
	}
	return &cut, nil
}

// === Caption Handlers ===

type captionLayoutArgs struct {
	Text          string         `json:"text"`
	CanvasWidth   int            `json:"canvas_width"`
	CanvasHeight  int            `json:"canvas_height"`
	Style         *caption.Style `json:"style"`
	DeviceTop     int            `json:"device_top"`
	DeviceHeight  int            `json:"device_height"`
	FramePosition string         `json:"frame_position"`
}

func (s *Server) handleCaptionLayout(args json.RawMessage) (interface{}, error) {
	var a captionLayoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CanvasWidth <= 0 || a.CanvasHeight <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", a.CanvasWidth, a.CanvasHeight)
	}
	style := caption.DefaultStyle()
	if a.Style != nil {
		style = a.Style.WithDefaults()
	}
	layout := s.layouter.Layout(a.Text, a.CanvasWidth, a.CanvasHeight, style, a.DeviceTop, a.DeviceHeight, a.FramePosition)
	return &layout, nil
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type captionVerifyArgs struct {
	Path          string      `json:"path"`
	Text          string      `json:"text"`
	CaptionHeight int         `json:"caption_height"`
	Region        *regionArgs `json:"region"`
	Language      string      `json:"language"`
}

func (s *Server) handleCaptionVerify(args json.RawMessage) (interface{}, error) {
	var a captionVerifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// Composed images are often rewritten in place.
	s.cache.Evict(a.Path)
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	region := b
	switch {
	case a.Region != nil:
		region = image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2).Add(b.Min)
	case a.CaptionHeight > 0:
		region = image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+a.CaptionHeight)
	}

	checker := s.checker
	checker.Language = a.Language
	return checker.Check(img, region, a.Text)
}

// === Composition Handlers ===

type backgroundArgs struct {
	ImagePath string            `json:"image_path"`
	Fit       string            `json:"fit"`
	Gradient  *imaging.Gradient `json:"gradient"`
	Color     string            `json:"color"`
}

type composeArgs struct {
	ScreenshotPath string            `json:"screenshot_path"`
	Frame          string            `json:"frame"`
	FramePath      string            `json:"frame_path"`
	DeviceType     string            `json:"device_type"`
	AutoFrame      *bool             `json:"auto_frame"`
	PreferredFrame string            `json:"preferred_frame"`
	Caption        string            `json:"caption"`
	Style          caption.Style     `json:"style"`
	Background     backgroundArgs    `json:"background"`
	Overrides      compose.Overrides `json:"overrides"`
	OutputWidth    int               `json:"output_width"`
	OutputHeight   int               `json:"output_height"`
	Resolution     string            `json:"resolution"`
	OutputPath     string            `json:"output_path"`
}

// composeResult is the tool view of a composition.
type composeResult struct {
	*compose.Output
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// buildRequest reads the files named by a into a compose.Request.
func (s *Server) buildRequest(a composeArgs) (compose.Request, error) {
	if a.ScreenshotPath == "" {
		return compose.Request{}, fmt.Errorf("screenshot_path is required")
	}
	shot, err := os.ReadFile(a.ScreenshotPath)
	if err != nil {
		return compose.Request{}, fmt.Errorf("failed to read screenshot: %w", err)
	}
	dt, err := frames.ParseDeviceType(a.DeviceType)
	if err != nil {
		return compose.Request{}, err
	}
	fit, err := imaging.ParseFitMode(a.Background.Fit)
	if err != nil {
		return compose.Request{}, err
	}

	req := compose.Request{
		Screenshot:     shot,
		ScreenshotID:   filepath.Base(a.ScreenshotPath),
		DeviceType:     dt,
		AutoFrame:      a.AutoFrame == nil || *a.AutoFrame,
		PreferredFrame: a.PreferredFrame,
		Caption:        a.Caption,
		Style:          a.Style,
		Overrides:      a.Overrides,
		Background: compose.Background{
			Fit:      fit,
			Gradient: a.Background.Gradient,
			Color:    a.Background.Color,
		},
		OutputWidth:  a.OutputWidth,
		OutputHeight: a.OutputHeight,
	}

	if a.Frame != "" {
		f, ok := s.engine.Registry().Lookup(a.Frame)
		if !ok {
			return compose.Request{}, fmt.Errorf("unknown frame: %s", a.Frame)
		}
		if a.FramePath != "" {
			f.AssetPath = a.FramePath
		}
		req.FrameMeta = &f
	} else if a.FramePath != "" {
		return compose.Request{}, fmt.Errorf("frame_path needs 'frame' to describe its screen area")
	}

	if a.Background.ImagePath != "" {
		data, err := os.ReadFile(a.Background.ImagePath)
		if err != nil {
			return compose.Request{}, fmt.Errorf("failed to read background image: %w", err)
		}
		req.Background.Image = data
	}

	if req.OutputWidth <= 0 || req.OutputHeight <= 0 {
		switch {
		case a.Resolution != "":
			r, err := frames.ParseResolution(a.Resolution)
			if err != nil {
				return compose.Request{}, err
			}
			req.OutputWidth, req.OutputHeight = r.Width, r.Height
		default:
			info, err := imaging.ReadImageInfo(a.ScreenshotPath)
			if err != nil {
				return compose.Request{}, err
			}
			req.OutputWidth, req.OutputHeight = info.Width, info.Height
		}
	}
	return req, nil
}

// deliver writes the PNG to outputPath, or inlines it as base64.
func deliver(out *compose.Output, outputPath string) (*composeResult, error) {
	result := &composeResult{Output: out}
	if outputPath == "" {
		result.ImageBase64 = base64.StdEncoding.EncodeToString(out.PNG)
		result.MimeType = "image/png"
		return result, nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, out.PNG, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	result.OutputPath = outputPath
	return result, nil
}

func (s *Server) handleComposeScreenshot(args json.RawMessage) (interface{}, error) {
	var a composeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req, err := s.buildRequest(a)
	if err != nil {
		return nil, err
	}
	res := s.engine.Compose(req)
	if res.IsFatal() {
		return nil, res.Reason
	}
	return deliver(res.Value, a.OutputPath)
}

type composeBatchArgs struct {
	Items   []composeArgs `json:"items"`
	Workers int           `json:"workers"`
}

type batchItemResult struct {
	Index  int            `json:"index"`
	Status outcome.Status `json:"status"`
	Error  string         `json:"error,omitempty"`
	*composeResult
}

type composeBatchResult struct {
	Results  []batchItemResult `json:"results"`
	OK       int               `json:"ok"`
	Degraded int               `json:"degraded"`
	Failed   int               `json:"failed"`
}

func (s *Server) handleComposeBatch(args json.RawMessage) (interface{}, error) {
	var a composeBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Items) == 0 {
		return nil, fmt.Errorf("items is empty")
	}

	items := make([]batchItemResult, len(a.Items))
	var reqs []compose.Request
	var indexes []int
	for i, item := range a.Items {
		items[i].Index = i
		req, err := s.buildRequest(item)
		if err != nil {
			items[i].Status = outcome.StatusFatal
			items[i].Error = err.Error()
			continue
		}
		reqs = append(reqs, req)
		indexes = append(indexes, i)
	}

	results := s.engine.ComposeBatch(context.Background(), reqs, s.workers(a.Workers))
	for j, res := range results {
		i := indexes[j]
		items[i].Status = res.Status
		if res.IsFatal() {
			items[i].Error = res.Reason.Error()
			continue
		}
		delivered, err := deliver(res.Value, a.Items[i].OutputPath)
		if err != nil {
			items[i].Status = outcome.StatusFatal
			items[i].Error = err.Error()
			continue
		}
		items[i].composeResult = delivered
	}

	out := &composeBatchResult{Results: items}
	for _, item := range items {
		switch item.Status {
		case outcome.StatusOK:
			out.OK++
		case outcome.StatusDegraded:
			out.Degraded++
		default:
			out.Failed++
		}
	}
	return out, nil
}
