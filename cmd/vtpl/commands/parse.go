package commands

import (
	"fmt"

	"github.com/livefir/vtpl"
)

const parseUsage = "vtpl parse [--format json|yaml] <file>"

// Parse compiles a template and prints its tree
func Parse(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var files []string
	for i := 0; i < len(args); i++ {
		if isFlag(args[i], "format") && i+1 < len(args) {
			cfg.Format = args[i+1]
			i++ // skip next arg
		} else {
			files = append(files, args[i])
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := singleFile(files, parseUsage)
	if err != nil {
		return err
	}

	template, err := readInput(path)
	if err != nil {
		return err
	}

	result, err := newCompiler(cfg, nil).Compile(template)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Format == "yaml" {
		return vtpl.EncodeYAML(stdout, result.Root)
	}
	return vtpl.EncodeJSON(stdout, result.Root)
}
