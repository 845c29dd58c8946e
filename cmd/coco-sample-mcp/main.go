package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/coco-sample-mcp/internal/generator"
	"github.com/ironsheep/coco-sample-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("COCO_SAMPLE_LOG_LEVEL") == "debug"

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("coco-sample-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "generate":
			if len(os.Args) != 3 {
				printUsage()
				os.Exit(2)
			}
			if err := runGenerate(os.Args[2], debug); err != nil {
				log.Fatalf("Generate failed: %v", err)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if debug {
		log.Printf("COCO Sample MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	gen := generator.New()
	if debug {
		gen.Logger = log.Default()
	}

	srv := server.NewWithGenerator(gen)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runGenerate reads a generation config from a JSON file and runs it once.
func runGenerate(path string, debug bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg generator.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	gen := generator.New()
	if debug {
		gen.Logger = log.Default()
	}

	res, err := gen.Generate(cfg)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func printUsage() {
	fmt.Println("coco-sample-mcp - synthetic COCO dataset generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  coco-sample-mcp                      Run the MCP server on stdin/stdout")
	fmt.Println("  coco-sample-mcp generate <config>    Generate once from a JSON config file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  COCO_SAMPLE_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The config file uses the same keys as the generate_sample_data tool,")
	fmt.Println("for example {\"width\": 640, \"height\": 480, \"output_dir\": \"out\"}.")
}
