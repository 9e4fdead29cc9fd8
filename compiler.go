package vtpl

import (
	"bytes"
	"io"
	"log"
	"strings"
	"time"

	"github.com/livefir/vtpl/internal/metrics"
)

// Config holds compiler configuration options
type Config struct {
	Logger  *log.Logger
	Debug   bool               // Log each template and its tree
	Metrics *metrics.Collector // Optional; nil disables collection
}

// Option is a functional option for configuring a Compiler
type Option func(*Config)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDebug logs every template before parsing and the resulting tree after
func WithDebug(enabled bool) Option {
	return func(c *Config) {
		c.Debug = enabled
	}
}

// WithMetrics records parse counters into collector
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Config) {
		c.Metrics = collector
	}
}

// Compiler parses templates into ASTs. A Compiler holds no per-parse state
// and may be shared between goroutines.
type Compiler struct {
	config Config
}

// Result is the output of one Compile call
type Result struct {
	Root     *Element
	Stats    Stats
	Duration time.Duration
}

// NewCompiler creates a compiler with the given options
func NewCompiler(opts ...Option) *Compiler {
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}
	return &Compiler{config: config}
}

// Compile trims template and parses it. A template without any start tag
// yields a Result with a nil Root.
func (c *Compiler) Compile(template string) (*Result, error) {
	template = strings.TrimSpace(template)
	if c.config.Debug {
		c.config.Logger.Printf("vtpl: compiling template (%d bytes): %s", len(template), template)
	}

	start := time.Now()
	root, err := Parse(template)
	elapsed := time.Since(start)
	if err != nil {
		c.config.Logger.Printf("vtpl: compile failed: %v", err)
		if c.config.Metrics != nil {
			c.config.Metrics.RecordFailure()
		}
		return nil, err
	}

	result := &Result{Root: root, Stats: Collect(root), Duration: elapsed}
	c.record(len(template), result)

	if c.config.Debug {
		if root == nil {
			c.config.Logger.Printf("vtpl: template has no root element")
		} else {
			var buf bytes.Buffer
			if err := EncodeJSON(&buf, root); err != nil {
				c.config.Logger.Printf("vtpl: failed to encode tree: %v", err)
			} else {
				c.config.Logger.Printf("vtpl: tree in %v: %s", elapsed, buf.String())
			}
		}
	}
	return result, nil
}

func (c *Compiler) record(size int, result *Result) {
	m := c.config.Metrics
	if m == nil {
		return
	}
	m.RecordParse(size, result.Duration)
	if result.Root == nil {
		m.RecordEmpty()
		return
	}
	s := result.Stats
	m.RecordTree(s.Elements, s.Expressions, s.Texts, s.Depth)
	for name, n := range s.Directives {
		for i := 0; i < n; i++ {
			m.IncrementCustomCounter("directive:" + name)
		}
	}
}
