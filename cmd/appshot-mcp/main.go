package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/appshot-frames/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("appshot-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("appshot-mcp - MCP server that frames App Store screenshots")
			fmt.Println()
			fmt.Println("Usage: appshot-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  APPSHOT_FRAMES_DIR=<dir>     Project frames (frames.json + bezel PNGs)")
			fmt.Println("  APPSHOT_ASSETS_DIR=<dir>     Bezel PNGs for the bundled frame table")
			fmt.Println("  APPSHOT_WORKERS=<n>          Concurrent compositions in compose_batch")
			fmt.Println("  APPSHOT_TESSDATA=<dir>       Tesseract data for caption_verify")
			fmt.Println("  APPSHOT_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	if cfg.Debug {
		log.Printf("appshot-mcp v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
