package vtpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/livefir/vtpl/internal/htmlparser"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier *minify.M
	once     sync.Once
)

// getMinifier returns an HTML minifier whose output the tokenizer reads back
// into the same tree (singleton)
func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepDefaultAttrVals: true,
			KeepDocumentTags:    true,
			KeepEndTags:         true,
			KeepQuotes:          true,
			KeepWhitespace:      true,
		})
	})
	return minifier
}

type renderConfig struct {
	minify bool
}

// RenderOption configures Render
type RenderOption func(*renderConfig)

// WithMinify passes the markup through the HTML minifier. The minified form
// is kept only when it parses back into the same tree, allowing runs of
// whitespace to collapse; otherwise the plain markup is written.
func WithMinify() RenderOption {
	return func(c *renderConfig) {
		c.minify = true
	}
}

// Render writes markup for root that parses back into an equivalent tree,
// up to collapsed whitespace when minifying.
// Directives are written in their shortest attribute form and conditional
// branches are written as siblings following the element owning the chain.
func Render(w io.Writer, root *Element, opts ...RenderOption) error {
	var config renderConfig
	for _, opt := range opts {
		opt(&config)
	}
	if root == nil {
		return nil
	}

	var buf bytes.Buffer
	r := &renderer{buf: &buf}
	r.element(root)
	if r.err != nil {
		return r.err
	}

	if !config.minify {
		_, err := buf.WriteTo(w)
		return err
	}

	var minified bytes.Buffer
	if err := getMinifier().Minify("text/html", &minified, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("minify markup: %w", err)
	}
	out := &buf
	if reparses(buf.String(), minified.String()) {
		out = &minified
	}
	_, err := out.WriteTo(w)
	return err
}

var spaceRun = regexp.MustCompile(`\s+`)

// reparses reports whether minified builds the same tree as plain up to
// collapsed whitespace. The minifier drops empty attributes and decodes
// entities in attribute values, both of which change the tree.
func reparses(plain, minified string) bool {
	root, err := Parse(minified)
	if err != nil || root == nil {
		return false
	}
	again, err := RenderString(root)
	if err != nil {
		return false
	}
	return spaceRun.ReplaceAllString(again, " ") == spaceRun.ReplaceAllString(plain, " ")
}

// RenderString is Render into a string
func RenderString(root *Element, opts ...RenderOption) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, root, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type renderer struct {
	buf *bytes.Buffer
	err error
}

func (r *renderer) element(el *Element) {
	r.node(el)
	for _, c := range el.IfConditions {
		if c.Block != nil && c.Block != el {
			r.node(c.Block)
		}
	}
}

func (r *renderer) node(n Node) {
	switch v := n.(type) {
	case *Element:
		r.open(v)
		if htmlparser.IsVoidElement(v.Tag) {
			return
		}
		for _, child := range v.Children {
			if el, ok := child.(*Element); ok {
				r.element(el)
			} else {
				r.node(child)
			}
		}
		for _, name := range scopedSlotNames(v) {
			r.node(v.ScopedSlots[name])
		}
		r.buf.WriteString("</" + v.Tag + ">")
	case *Expression:
		r.buf.WriteString(v.Text)
	case *Text:
		r.buf.WriteString(v.Text)
	}
}

func (r *renderer) open(el *Element) {
	r.buf.WriteString("<" + el.Tag)

	if l := el.Loop; l != nil {
		alias := l.Alias
		if l.Iterator1 != "" {
			parts := []string{l.Alias, l.Iterator1}
			if l.Iterator2 != "" {
				parts = append(parts, l.Iterator2)
			}
			alias = "(" + strings.Join(parts, ", ") + ")"
		}
		r.attr("v-for", alias+" in "+l.Source)
	}
	if c := el.Cond; c != nil {
		switch c.Kind {
		case CondIf:
			r.attr("v-if", c.Exp)
		case CondElseIf:
			r.attr("v-else-if", c.Exp)
		case CondElse:
			r.bare("v-else")
		}
	}
	if el.Once {
		r.bare("v-once")
	}
	if el.Key != "" {
		r.attr(":key", el.Key)
	}
	if el.Ref != nil {
		r.attr(":ref", el.Ref.Name)
	}
	if s := el.Slot; s != nil {
		if s.Name != "" {
			r.attr(":name", s.Name)
		}
		if s.Scope != "" {
			r.attr("slot-scope", s.Scope)
		}
		// other elements carry the target in Attrs
		if s.Target != "" && el.Tag == "template" {
			r.attr(":slot", s.Target)
		}
	}
	if el.Component != "" {
		r.attr(":is", el.Component)
	}
	if el.InlineTemplate {
		r.bare("inline-template")
	}

	for _, p := range el.Attrs {
		if p.Dynamic {
			r.attr(":"+p.Name, p.Value)
			continue
		}
		var value string
		if err := json.Unmarshal([]byte(p.Value), &value); err != nil && r.err == nil {
			r.err = fmt.Errorf("attribute %s on <%s>: %w", p.Name, el.Tag, err)
		}
		r.attr(p.Name, value)
	}

	names := make([]string, 0, len(el.Events))
	for name := range el.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, h := range el.Events[name] {
			r.attr("@"+name, h.Value)
		}
	}

	for _, d := range el.Directives {
		r.attr(d.RawName, d.Value)
	}

	r.buf.WriteString(">")
}

// attr writes name=value, single-quoted when the value holds a double quote
func (r *renderer) attr(name, value string) {
	quote := `"`
	if strings.Contains(value, `"`) && !strings.Contains(value, "'") {
		quote = "'"
	}
	r.buf.WriteString(" " + name + "=" + quote + value + quote)
}

func (r *renderer) bare(name string) {
	r.buf.WriteString(" " + name)
}
