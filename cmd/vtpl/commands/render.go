package commands

import (
	"fmt"

	"github.com/livefir/vtpl"
)

const renderUsage = "vtpl render [--minify] <file>"

// Render compiles a template and writes it back as normalized markup
func Render(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var files []string
	for _, arg := range args {
		if isFlag(arg, "minify") {
			cfg.Minify = true
		} else {
			files = append(files, arg)
		}
	}

	path, err := singleFile(files, renderUsage)
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

	var opts []vtpl.RenderOption
	if cfg.Minify {
		opts = append(opts, vtpl.WithMinify())
	}
	if err := vtpl.Render(stdout, result.Root, opts...); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout)
	return err
}
