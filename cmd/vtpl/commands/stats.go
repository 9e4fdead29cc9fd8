package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/livefir/vtpl"
	"github.com/livefir/vtpl/internal/metrics"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(14).Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Stats compiles every file and reports tree statistics plus a summary
func Stats(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one template file required: vtpl stats <files...>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	compiler := newCompiler(cfg, collector)

	failed := 0
	for _, path := range args {
		template, err := readInput(path)
		if err == nil {
			var result *vtpl.Result
			result, err = compiler.Compile(template)
			if err == nil {
				printStats(path, result.Stats)
				continue
			}
		}
		failed++
		fmt.Fprintln(stdout, titleStyle.Render(path))
		fmt.Fprintln(stdout, "  "+errorStyle.Render(err.Error()))
	}

	m := collector.GetMetrics()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, titleStyle.Render("Summary"))
	printRow("parsed", fmt.Sprint(m.TemplatesParsed))
	printRow("failed", fmt.Sprint(m.ParseFailures))
	printRow("empty", fmt.Sprint(m.EmptyTemplates))
	printRow("bytes", fmt.Sprint(m.BytesParsed))
	printRow("avg time", collector.GetAverageParseTime().String())

	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed", failed, len(args))
	}
	return nil
}

func printStats(path string, s vtpl.Stats) {
	fmt.Fprintln(stdout, titleStyle.Render(path))
	printRow("elements", fmt.Sprint(s.Elements))
	printRow("expressions", fmt.Sprint(s.Expressions))
	printRow("texts", fmt.Sprint(s.Texts))
	printRow("depth", fmt.Sprint(s.Depth))
	if len(s.Directives) > 0 {
		printRow("directives", formatCounts(s.Directives))
	}
}

func printRow(label, value string) {
	fmt.Fprintln(stdout, "  "+labelStyle.Render(label)+value)
}

func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, counts[name])
	}
	return strings.Join(parts, " ")
}
