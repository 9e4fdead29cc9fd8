package vtpl

import "testing"

// shape is a comparable projection of a tree without parent links or the
// pending attribute list
type shape struct {
	Kind           NodeKind
	Tag            string
	Text           string
	Expression     string
	Loop           *Loop
	Cond           *Condition
	Once           bool
	Key            string
	Ref            *Ref
	Slot           *Slot
	Component      string
	InlineTemplate bool
	Plain          bool
	HasBinding     bool
	Attrs          []Prop
	Events         map[string]Handlers
	Directives     []Directive
	Children       []shape
	Branches       []branch
	ScopedSlots    map[string]shape
}

type branch struct {
	Exp   string
	Self  bool
	Block *shape
}

func shapeOf(n Node) shape {
	switch v := n.(type) {
	case *Text:
		return shape{Kind: TextNode, Text: v.Text}
	case *Expression:
		return shape{Kind: ExpressionNode, Text: v.Text, Expression: v.Expression}
	case *Element:
		s := shape{
			Kind:           ElementNode,
			Tag:            v.Tag,
			Loop:           v.Loop,
			Cond:           v.Cond,
			Once:           v.Once,
			Key:            v.Key,
			Ref:            v.Ref,
			Slot:           v.Slot,
			Component:      v.Component,
			InlineTemplate: v.InlineTemplate,
			Plain:          v.Plain,
			HasBinding:     v.HasBinding,
			Attrs:          v.Attrs,
			Events:         v.Events,
			Directives:     v.Directives,
		}
		for _, c := range v.Children {
			s.Children = append(s.Children, shapeOf(c))
		}
		for _, c := range v.IfConditions {
			b := branch{Exp: c.Exp, Self: c.Block == v}
			if !b.Self {
				bs := shapeOf(c.Block)
				b.Block = &bs
			}
			s.Branches = append(s.Branches, b)
		}
		for name, el := range v.ScopedSlots {
			if s.ScopedSlots == nil {
				s.ScopedSlots = map[string]shape{}
			}
			s.ScopedSlots[name] = shapeOf(el)
		}
		return s
	}
	return shape{}
}

func mustParse(t *testing.T, template string) *Element {
	t.Helper()
	root, err := Parse(template)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", template, err)
	}
	if root == nil {
		t.Fatalf("Parse(%q) returned no root", template)
	}
	return root
}

func childElement(t *testing.T, el *Element, i int) *Element {
	t.Helper()
	if i >= len(el.Children) {
		t.Fatalf("<%s> has %d children, want index %d", el.Tag, len(el.Children), i)
	}
	child, ok := el.Children[i].(*Element)
	if !ok {
		t.Fatalf("child %d of <%s> is %T, want *Element", i, el.Tag, el.Children[i])
	}
	return child
}
