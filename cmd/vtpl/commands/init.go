package commands

import (
	"fmt"
	"os"

	"github.com/livefir/vtpl/cmd/vtpl/internal/config"
)

// Init writes a default .vtpl.yaml into the working directory
func Init(args []string) error {
	force := false
	for _, arg := range args {
		if isFlag(arg, "force") {
			force = true
		} else {
			return fmt.Errorf("unexpected argument: %s (usage: vtpl init [--force])", arg)
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	path := config.Path(dir)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	if err := config.SaveConfig(dir, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(stdout, "✅ Wrote %s\n", path)
	return nil
}
