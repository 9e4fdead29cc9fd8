package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/livefir/vtpl/cmd/vtpl/commands"
)

// Version information (can be overridden at build time with -ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error

	switch command {
	case "parse":
		err = commands.Parse(args)
	case "render":
		err = commands.Render(args)
	case "extract":
		err = commands.Extract(args)
	case "stats":
		err = commands.Stats(args)
	case "init":
		err = commands.Init(args)
	case "version", "--version", "-v":
		printVersion()
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	info, _ := debug.ReadBuildInfo()
	for _, line := range versionLines(info) {
		fmt.Println(line)
	}
}

// versionLines describes the binary and the versions of the libraries that
// shape parse and render output. info may be nil.
func versionLines(info *debug.BuildInfo) []string {
	lines := []string{fmt.Sprintf("vtpl %s (commit %s)", version, commit)}
	if info == nil {
		return lines
	}
	lines = append(lines, "go: "+info.GoVersion)
	for _, dep := range info.Deps {
		if outputDeps[dep.Path] {
			lines = append(lines, dep.Path+": "+dep.Version)
		}
	}
	return lines
}

var outputDeps = map[string]bool{
	"github.com/tdewolff/minify/v2": true,
	"golang.org/x/net":              true,
	"gopkg.in/yaml.v3":              true,
}

func printUsage() {
	fmt.Println("vtpl - template parser for Vue-style markup")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vtpl parse [--format json|yaml] <file>   Print the parsed tree (file may be -)")
	fmt.Println("  vtpl render [--minify] <file>            Print normalized markup")
	fmt.Println("  vtpl extract --id <id> <file>            Print the template of an element in a page")
	fmt.Println("  vtpl stats <files...>                    Summarize parsed trees")
	fmt.Println("  vtpl init [--force]                      Write a default .vtpl.yaml")
	fmt.Println("  vtpl version                             Show version information")
	fmt.Println()
	fmt.Println("Defaults for format, minify, debug and id are read from .vtpl.yaml")
	fmt.Println("in the working directory.")
}
