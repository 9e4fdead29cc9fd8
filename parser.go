package vtpl

import (
	"fmt"
	"strings"

	"github.com/livefir/vtpl/internal/htmlparser"
	"github.com/livefir/vtpl/internal/textparser"
)

// whitespace is the single-space text node standing in for whitespace
// between elements
const whitespace = " "

// builder assembles the tree from tokenizer events
type builder struct {
	root          *Element
	currentParent *Element
	stack         []*Element
}

// Parse builds the AST for template. It returns a nil root and a nil error
// when the template contains no start tag.
func Parse(template string) (*Element, error) {
	b := &builder{}
	if err := htmlparser.Parse(template, b); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return b.root, nil
}

func (b *builder) Start(tag string, attrs []htmlparser.Attr, unary bool, _, _ int) error {
	element := newElement(tag, attrs, b.currentParent)

	processFor(element)
	processIf(element)
	processOnce(element)
	processElement(element)

	if b.root == nil {
		if element.Loop != nil {
			return ErrLoopOnRoot{Tag: tag, Source: element.Loop.Source}
		}
		b.root = element
	} else if len(b.stack) == 0 && b.root.If() != "" && element.IsElseBranch() {
		addIfCondition(b.root, element.ElseIf(), element)
	}

	if parent := b.currentParent; parent != nil {
		switch {
		case element.IsElseBranch():
			processIfConditions(element, parent)
		case element.Slot != nil && element.Slot.Scope != "":
			parent.Plain = false
			name := element.Slot.Target
			if name == "" {
				name = defaultSlot
			}
			if parent.ScopedSlots == nil {
				parent.ScopedSlots = make(map[string]*Element)
			}
			parent.ScopedSlots[name] = element
		default:
			parent.Children = append(parent.Children, element)
			element.Parent = parent
		}
	}

	if !unary {
		b.currentParent = element
		b.stack = append(b.stack, element)
	}
	return nil
}

func (b *builder) End(tag string, start, _ int) error {
	if len(b.stack) == 0 {
		return ErrUnbalancedEnd{Tag: tag, Offset: start}
	}
	element := b.stack[len(b.stack)-1]
	if n := len(element.Children); n > 0 {
		if t, ok := element.Children[n-1].(*Text); ok && t.Text == whitespace {
			element.Children = element.Children[:n-1]
		}
	}

	b.stack = b.stack[:len(b.stack)-1]
	b.currentParent = nil
	if n := len(b.stack); n > 0 {
		b.currentParent = b.stack[n-1]
	}
	return nil
}

func (b *builder) Chars(text string) error {
	parent := b.currentParent
	if parent == nil {
		return nil
	}
	children := parent.Children

	if strings.TrimSpace(text) == "" {
		if len(children) == 0 {
			return nil
		}
		text = whitespace
	}

	if text != whitespace {
		if exp, ok := textparser.Parse(text); ok {
			parent.Children = append(children, &Expression{Type: ExpressionNode, Expression: exp, Text: text})
			return nil
		}
	} else if last, ok := lastText(children); ok && last == whitespace {
		return nil
	}
	parent.Children = append(children, &Text{Type: TextNode, Text: text})
	return nil
}

// lastText returns the text of the last child when it is a plain text node
func lastText(children []Node) (string, bool) {
	if len(children) == 0 {
		return "", false
	}
	if t, ok := children[len(children)-1].(*Text); ok {
		return t.Text, true
	}
	return "", false
}
