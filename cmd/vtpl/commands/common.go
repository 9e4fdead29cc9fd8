package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/livefir/vtpl"
	"github.com/livefir/vtpl/cmd/vtpl/internal/config"
	"github.com/livefir/vtpl/internal/metrics"
)

// Output streams, swapped out by tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// loadConfig reads .vtpl.yaml from the working directory
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// readInput reads a template file, or stdin when path is "-"
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func newCompiler(cfg *config.Config, collector *metrics.Collector) *vtpl.Compiler {
	opts := []vtpl.Option{vtpl.WithDebug(cfg.Debug)}
	if cfg.Debug {
		opts = append(opts, vtpl.WithLogger(log.New(stderr, "", log.LstdFlags)))
	}
	if collector != nil {
		opts = append(opts, vtpl.WithMetrics(collector))
	}
	return vtpl.NewCompiler(opts...)
}

// isFlag reports whether arg names the flag, accepting one or two dashes
func isFlag(arg, name string) bool {
	return arg == "-"+name || arg == "--"+name
}

func singleFile(files []string, usage string) (string, error) {
	switch len(files) {
	case 0:
		return "", fmt.Errorf("template file required: %s", usage)
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("expected one template file, got %d: %s", len(files), usage)
	}
}
