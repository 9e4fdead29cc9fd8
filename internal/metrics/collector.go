package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers parse counters with atomic updates; safe for concurrent use
type Collector struct {
	parseMetrics      *ParseMetrics
	operationCounters map[string]*int64
	mu                sync.RWMutex
	startTime         time.Time
}

// ParseMetrics is a snapshot of template parsing activity
type ParseMetrics struct {
	// Parse outcomes
	TemplatesParsed int64 `json:"templates_parsed"`
	ParseFailures   int64 `json:"parse_failures"`
	EmptyTemplates  int64 `json:"empty_templates"`

	// Input and timing
	BytesParsed    int64         `json:"bytes_parsed"`
	TotalParseTime time.Duration `json:"total_parse_time"`

	// Tree shape
	ElementsBuilt    int64 `json:"elements_built"`
	ExpressionsBuilt int64 `json:"expressions_built"`
	TextsBuilt       int64 `json:"texts_built"`
	MaxDepth         int64 `json:"max_depth"`

	// Uptime
	StartTime time.Time     `json:"start_time"`
	Uptime    time.Duration `json:"uptime"`
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	now := time.Now()
	return &Collector{
		parseMetrics: &ParseMetrics{
			StartTime: now,
		},
		operationCounters: make(map[string]*int64),
		startTime:         now,
	}
}

// RecordParse records a successful parse of size bytes
func (c *Collector) RecordParse(size int, elapsed time.Duration) {
	atomic.AddInt64(&c.parseMetrics.TemplatesParsed, 1)
	atomic.AddInt64(&c.parseMetrics.BytesParsed, int64(size))
	atomic.AddInt64((*int64)(&c.parseMetrics.TotalParseTime), int64(elapsed))
}

// RecordFailure records a parse that returned an error
func (c *Collector) RecordFailure() {
	atomic.AddInt64(&c.parseMetrics.ParseFailures, 1)
}

// RecordEmpty records a parse that produced no root
func (c *Collector) RecordEmpty() {
	atomic.AddInt64(&c.parseMetrics.EmptyTemplates, 1)
}

// RecordTree adds the node counts of one parsed tree
func (c *Collector) RecordTree(elements, expressions, texts, depth int) {
	atomic.AddInt64(&c.parseMetrics.ElementsBuilt, int64(elements))
	atomic.AddInt64(&c.parseMetrics.ExpressionsBuilt, int64(expressions))
	atomic.AddInt64(&c.parseMetrics.TextsBuilt, int64(texts))

	d := int64(depth)
	for {
		max := atomic.LoadInt64(&c.parseMetrics.MaxDepth)
		if d <= max {
			break
		}
		if atomic.CompareAndSwapInt64(&c.parseMetrics.MaxDepth, max, d) {
			break
		}
	}
}

// IncrementCustomCounter increments a custom named counter
func (c *Collector) IncrementCustomCounter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, exists := c.operationCounters[name]; exists {
		atomic.AddInt64(counter, 1)
	} else {
		var newCounter int64 = 1
		c.operationCounters[name] = &newCounter
	}
}

// GetMetrics returns a copy of the current values
func (c *Collector) GetMetrics() ParseMetrics {
	c.mu.RLock()
	startTime := c.startTime
	c.mu.RUnlock()

	return ParseMetrics{
		TemplatesParsed:  atomic.LoadInt64(&c.parseMetrics.TemplatesParsed),
		ParseFailures:    atomic.LoadInt64(&c.parseMetrics.ParseFailures),
		EmptyTemplates:   atomic.LoadInt64(&c.parseMetrics.EmptyTemplates),
		BytesParsed:      atomic.LoadInt64(&c.parseMetrics.BytesParsed),
		TotalParseTime:   time.Duration(atomic.LoadInt64((*int64)(&c.parseMetrics.TotalParseTime))),
		ElementsBuilt:    atomic.LoadInt64(&c.parseMetrics.ElementsBuilt),
		ExpressionsBuilt: atomic.LoadInt64(&c.parseMetrics.ExpressionsBuilt),
		TextsBuilt:       atomic.LoadInt64(&c.parseMetrics.TextsBuilt),
		MaxDepth:         atomic.LoadInt64(&c.parseMetrics.MaxDepth),
		StartTime:        startTime,
		Uptime:           time.Since(startTime),
	}
}

// GetCustomCounters returns all custom counters
func (c *Collector) GetCustomCounters() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]int64)
	for name, counter := range c.operationCounters {
		result[name] = atomic.LoadInt64(counter)
	}
	return result
}

// Reset resets all metrics to zero
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	atomic.StoreInt64(&c.parseMetrics.TemplatesParsed, 0)
	atomic.StoreInt64(&c.parseMetrics.ParseFailures, 0)
	atomic.StoreInt64(&c.parseMetrics.EmptyTemplates, 0)
	atomic.StoreInt64(&c.parseMetrics.BytesParsed, 0)
	atomic.StoreInt64((*int64)(&c.parseMetrics.TotalParseTime), 0)
	atomic.StoreInt64(&c.parseMetrics.ElementsBuilt, 0)
	atomic.StoreInt64(&c.parseMetrics.ExpressionsBuilt, 0)
	atomic.StoreInt64(&c.parseMetrics.TextsBuilt, 0)
	atomic.StoreInt64(&c.parseMetrics.MaxDepth, 0)

	c.operationCounters = make(map[string]*int64)

	c.startTime = time.Now()
	c.parseMetrics.StartTime = c.startTime
}

// GetFailureRate returns the percentage of parse attempts that failed
func (c *Collector) GetFailureRate() float64 {
	parsed := atomic.LoadInt64(&c.parseMetrics.TemplatesParsed)
	failures := atomic.LoadInt64(&c.parseMetrics.ParseFailures)

	total := parsed + failures
	if total == 0 {
		return 0.0
	}
	return float64(failures) / float64(total) * 100.0
}

// GetAverageParseTime returns the mean duration of successful parses
func (c *Collector) GetAverageParseTime() time.Duration {
	parsed := atomic.LoadInt64(&c.parseMetrics.TemplatesParsed)
	if parsed == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64((*int64)(&c.parseMetrics.TotalParseTime)) / parsed)
}
