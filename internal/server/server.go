package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ironsheep/appshot-frames/internal/caption"
	"github.com/ironsheep/appshot-frames/internal/compose"
	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/ocr"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvFramesDir = "APPSHOT_FRAMES_DIR"
	EnvAssetsDir = "APPSHOT_ASSETS_DIR"
	EnvWorkers   = "APPSHOT_WORKERS"
	EnvLogLevel  = "APPSHOT_LOG_LEVEL"
	EnvTessdata  = "APPSHOT_TESSDATA"
)

// Config holds process-wide settings.
type Config struct {
	// FramesDir holds a frames.json manifest and its bezel PNGs. Empty uses
	// the bundled frame table.
	FramesDir string
	// AssetsDir resolves the bundled frames' relative asset paths.
	AssetsDir string
	// Workers bounds compose_batch concurrency. Zero uses runtime.NumCPU().
	Workers int
	Debug   bool
	// Tessdata overrides the Tesseract data directory for caption_verify.
	Tessdata string
}

// ConfigFromEnv reads Config from the APPSHOT_* environment variables.
// An unparsable worker count is logged and ignored.
func ConfigFromEnv() Config {
	cfg := Config{
		FramesDir: os.Getenv(EnvFramesDir),
		AssetsDir: os.Getenv(EnvAssetsDir),
		Debug:     os.Getenv(EnvLogLevel) == "debug",
		Tessdata:  os.Getenv(EnvTessdata),
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("Warning: ignoring %s=%q: not a positive integer", EnvWorkers, v)
		} else {
			cfg.Workers = n
		}
	}
	return cfg
}

// Server handles MCP protocol communication
type Server struct {
	cfg      Config
	logger   *log.Logger
	cache    *imaging.ImageCache
	registry outcome.Result[frames.LoadResult]
	engine   *compose.Engine
	layouter *caption.Layouter
	matcher  *frames.Matcher
	checker  ocr.Checker
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. The frame registry is loaded once
// here; a broken manifest falls back to the bundled frames and the reason is
// reported by frames_list.
func New(cfg Config) *Server {
	logger := log.Default()
	cache := imaging.NewImageCache()

	framesDir := cfg.FramesDir
	if framesDir != "" {
		if abs, err := filepath.Abs(framesDir); err == nil {
			framesDir = abs
		}
	}
	loaded := frames.Load(framesDir, frames.LoadOptions{Logger: logger, Cache: cache})
	if cfg.Debug {
		logger.Printf("Loaded %d frames (%s, %s)", loaded.Value.Registry.Len(), loaded.Value.Source, loaded.Status)
	}

	tuning := frames.DefaultTuning()
	return &Server{
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		registry: loaded,
		engine: compose.NewEngine(compose.Options{
			Registry:  loaded.Value.Registry,
			Tuning:    &tuning,
			Logger:    logger,
			Cache:     cache,
			AssetsDir: cfg.AssetsDir,
		}),
		layouter: caption.NewLayouter(tuning, nil),
		matcher:  frames.NewMatcher(loaded.Value.Registry, tuning, logger),
		checker:  ocr.Checker{TessdataPrefix: cfg.Tessdata},
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve handles newline-delimited JSON-RPC requests from in until EOF.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Compose requests can carry long argument lists.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// workers is the compose_batch concurrency for a request asking for n.
func (s *Server) workers(n int) int {
	switch {
	case n > 0:
		return n
	case s.cfg.Workers > 0:
		return s.cfg.Workers
	}
	return runtime.NumCPU()
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "appshot-frames",
				"version": "0.1.0",
			},
		},
	}
}
