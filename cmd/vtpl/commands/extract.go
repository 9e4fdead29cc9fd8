package commands

import (
	"fmt"
	"strings"

	"github.com/livefir/vtpl"
)

const extractUsage = "vtpl extract --id <id> <file>"

// Extract prints the template markup of the element with the given id
func Extract(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id := cfg.ID
	var files []string
	for i := 0; i < len(args); i++ {
		if isFlag(args[i], "id") && i+1 < len(args) {
			id = args[i+1]
			i++ // skip next arg
		} else {
			files = append(files, args[i])
		}
	}

	if id == "" {
		return fmt.Errorf("element id required: %s", extractUsage)
	}

	path, err := singleFile(files, extractUsage)
	if err != nil {
		return err
	}

	document, err := readInput(path)
	if err != nil {
		return err
	}

	template, err := vtpl.ExtractTemplate(strings.NewReader(document), id)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	_, err = fmt.Fprintln(stdout, template)
	return err
}
