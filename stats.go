package vtpl

import "sort"

// Stats summarizes the shape of a parsed tree
type Stats struct {
	Elements    int            `json:"elements" yaml:"elements"`
	Expressions int            `json:"expressions" yaml:"expressions"`
	Texts       int            `json:"texts" yaml:"texts"`
	Depth       int            `json:"depth" yaml:"depth"`
	Directives  map[string]int `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Walk visits n and everything below it in document order: children first,
// then the remaining branches of a conditional chain, then scoped slots by
// name. depth is 1 for n.
func Walk(n Node, fn func(n Node, depth int)) {
	walk(n, 1, fn)
}

func walk(n Node, depth int, fn func(Node, int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	el, ok := n.(*Element)
	if !ok {
		return
	}
	for _, child := range el.Children {
		walk(child, depth+1, fn)
	}
	for _, c := range el.IfConditions {
		if c.Block != nil && c.Block != el {
			walk(c.Block, depth, fn)
		}
	}
	for _, name := range scopedSlotNames(el) {
		walk(el.ScopedSlots[name], depth+1, fn)
	}
}

func scopedSlotNames(el *Element) []string {
	names := make([]string, 0, len(el.ScopedSlots))
	for name := range el.ScopedSlots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collect computes Stats for root. A nil root yields zero Stats.
func Collect(root *Element) Stats {
	s := Stats{Directives: map[string]int{}}
	if root == nil {
		return s
	}
	Walk(root, func(n Node, depth int) {
		if depth > s.Depth {
			s.Depth = depth
		}
		switch v := n.(type) {
		case *Element:
			s.Elements++
			countDirectives(v, s.Directives)
		case *Expression:
			s.Expressions++
		case *Text:
			s.Texts++
		}
	})
	return s
}

func countDirectives(el *Element, counts map[string]int) {
	if el.Loop != nil {
		counts["for"]++
	}
	if el.Cond != nil {
		counts[el.Cond.Kind.String()]++
	}
	if el.Once {
		counts["once"]++
	}
	if el.Key != "" {
		counts["key"]++
	}
	if el.Ref != nil {
		counts["ref"]++
	}
	if el.Slot != nil {
		counts["slot"]++
	}
	if el.Component != "" {
		counts["is"]++
	}
	for _, p := range el.Attrs {
		if p.Dynamic {
			counts["bind"]++
		}
	}
	for _, h := range el.Events {
		counts["on"] += len(h)
	}
	for _, d := range el.Directives {
		counts[d.Name]++
	}
}
