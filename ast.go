package vtpl

import (
	"encoding/json"

	"github.com/livefir/vtpl/internal/htmlparser"
)

// NodeKind identifies the variant of an AST node
type NodeKind int

const (
	ElementNode    NodeKind = 1 // Element
	ExpressionNode NodeKind = 2 // text containing {{ }} interpolation
	TextNode       NodeKind = 3 // plain text
)

// Node is implemented by *Element, *Expression and *Text
type Node interface {
	Kind() NodeKind
}

// Attr is a raw attribute awaiting classification
type Attr = htmlparser.Attr

// Element is a tag in the template. Its directive fields are filled in by the
// processors while the start tag is handled and are read-only once the
// element's end tag has been seen.
type Element struct {
	Type      NodeKind          `json:"type" yaml:"type"`
	Tag       string            `json:"tag" yaml:"tag"`
	AttrsList []Attr            `json:"attrsList" yaml:"attrsList"`
	AttrsMap  map[string]string `json:"attrsMap" yaml:"attrsMap"`
	Parent    *Element          `json:"-" yaml:"-"`
	Children  []Node            `json:"children" yaml:"children"`

	Loop         *Loop         `json:"loop,omitempty" yaml:"loop,omitempty"`
	Cond         *Condition    `json:"cond,omitempty" yaml:"cond,omitempty"`
	IfConditions []IfCondition `json:"-" yaml:"-"`
	Once         bool          `json:"once,omitempty" yaml:"once,omitempty"`
	Key          string        `json:"key,omitempty" yaml:"key,omitempty"`
	Ref          *Ref          `json:"ref,omitempty" yaml:"ref,omitempty"`
	Slot         *Slot         `json:"slot,omitempty" yaml:"slot,omitempty"`

	ScopedSlots    map[string]*Element `json:"scopedSlots,omitempty" yaml:"scopedSlots,omitempty"`
	Component      string              `json:"component,omitempty" yaml:"component,omitempty"`
	InlineTemplate bool                `json:"inlineTemplate,omitempty" yaml:"inlineTemplate,omitempty"`
	Plain          bool                `json:"plain" yaml:"plain"`
	HasBinding     bool                `json:"hasBinding,omitempty" yaml:"hasBinding,omitempty"`

	Attrs      []Prop              `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Events     map[string]Handlers `json:"events,omitempty" yaml:"events,omitempty"`
	Directives []Directive         `json:"directives,omitempty" yaml:"directives,omitempty"`
}

func (*Element) Kind() NodeKind { return ElementNode }

// Expression is a text run containing interpolation
type Expression struct {
	Type       NodeKind `json:"type" yaml:"type"`
	Expression string   `json:"expression" yaml:"expression"`
	Text       string   `json:"text" yaml:"text"`
}

func (*Expression) Kind() NodeKind { return ExpressionNode }

// Text is a literal text run
type Text struct {
	Type NodeKind `json:"type" yaml:"type"`
	Text string   `json:"text" yaml:"text"`
}

func (*Text) Kind() NodeKind { return TextNode }

// Loop holds a parsed v-for binding
type Loop struct {
	Source    string `json:"for" yaml:"for"`
	Alias     string `json:"alias" yaml:"alias"`
	Iterator1 string `json:"iterator1,omitempty" yaml:"iterator1,omitempty"`
	Iterator2 string `json:"iterator2,omitempty" yaml:"iterator2,omitempty"`
}

// CondKind is the role of an element within a conditional chain
type CondKind int

const (
	CondIf CondKind = iota + 1
	CondElseIf
	CondElse
)

func (k CondKind) String() string {
	switch k {
	case CondIf:
		return "if"
	case CondElseIf:
		return "elseif"
	case CondElse:
		return "else"
	}
	return ""
}

func (k CondKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Condition is the v-if / v-else-if / v-else attached to an element
type Condition struct {
	Kind CondKind `json:"kind" yaml:"kind"`
	Exp  string   `json:"exp,omitempty" yaml:"exp,omitempty"`
}

// IfCondition is one branch of a chain; Exp is empty for the else branch
type IfCondition struct {
	Exp   string   `json:"exp,omitempty" yaml:"exp,omitempty"`
	Block *Element `json:"-" yaml:"-"`
}

// Ref is a ref binding; InFor is set when the element or an ancestor loops
type Ref struct {
	Name  string `json:"name" yaml:"name"`
	InFor bool   `json:"inFor" yaml:"inFor"`
}

// Slot groups slot outlet and slot content data
type Slot struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Scope  string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Prop is a classified attribute. Dynamic values are expressions, static ones
// are JSON string literals.
type Prop struct {
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Dynamic bool   `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`
}

// Handler is one registered event handler
type Handler struct {
	Value string `json:"value" yaml:"value"`
}

// Handlers keeps handlers for one event in registration order
type Handlers []Handler

// MarshalJSON encodes a lone handler as an object and several as a list
func (h Handlers) MarshalJSON() ([]byte, error) {
	if len(h) == 1 {
		return json.Marshal(h[0])
	}
	return json.Marshal([]Handler(h))
}

func (h Handlers) MarshalYAML() (interface{}, error) {
	if len(h) == 1 {
		return h[0], nil
	}
	return []Handler(h), nil
}

// Directive is a generic v- directive
type Directive struct {
	Name    string `json:"name" yaml:"name"`
	RawName string `json:"rawName" yaml:"rawName"`
	Value   string `json:"value" yaml:"value"`
}

func newElement(tag string, attrs []Attr, parent *Element) *Element {
	list := make([]Attr, len(attrs))
	copy(list, attrs)
	return &Element{
		Type:      ElementNode,
		Tag:       tag,
		AttrsList: list,
		AttrsMap:  makeAttrsMap(attrs),
		Parent:    parent,
		Children:  []Node{},
	}
}

func makeAttrsMap(attrs []Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}

// If returns the v-if expression, or "" when the element does not open a chain
func (el *Element) If() string {
	if el.Cond != nil && el.Cond.Kind == CondIf {
		return el.Cond.Exp
	}
	return ""
}

// IsElseBranch reports whether el continues a chain with v-else-if or v-else
func (el *Element) IsElseBranch() bool {
	return el.Cond != nil && (el.Cond.Kind == CondElseIf || el.Cond.Kind == CondElse)
}

// ElseIf returns the v-else-if expression
func (el *Element) ElseIf() string {
	if el.Cond != nil && el.Cond.Kind == CondElseIf {
		return el.Cond.Exp
	}
	return ""
}
