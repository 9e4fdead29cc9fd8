package vtpl

import (
	"regexp"
	"strings"

	"github.com/livefir/vtpl/internal/textparser"
)

var (
	forAliasRE    = regexp.MustCompile(`(.*?)\s+(?:in|of)\s+(.*)`)
	forIteratorRE = regexp.MustCompile(`\((\{[^}]*\}|[^,]*),([^,]*)(?:,([^,]*))?\)`)
)

// defaultSlot is the slot target expression used when none is given
const defaultSlot = `"default"`

// processFor reads v-for. A value that is not "<alias> in|of <source>" is
// dropped without error.
func processFor(el *Element) {
	exp, _ := getAndRemoveAttr(el, "v-for", false)
	if exp == "" {
		return
	}
	inMatch := forAliasRE.FindStringSubmatch(exp)
	if inMatch == nil {
		return
	}
	loop := &Loop{Source: strings.TrimSpace(inMatch[2])}
	alias := strings.TrimSpace(inMatch[1])
	if it := forIteratorRE.FindStringSubmatchIndex(alias); it != nil {
		loop.Alias = strings.TrimSpace(alias[it[2]:it[3]])
		loop.Iterator1 = strings.TrimSpace(alias[it[4]:it[5]])
		if it[6] >= 0 {
			loop.Iterator2 = strings.TrimSpace(alias[it[6]:it[7]])
		}
	} else {
		loop.Alias = alias
	}
	el.Loop = loop
}

// processIf reads the conditional directives. An element opening a chain is
// the first entry of its own chain. v-else and v-else-if are left in place
// when v-if is present.
func processIf(el *Element) {
	if exp, _ := getAndRemoveAttr(el, "v-if", false); exp != "" {
		el.Cond = &Condition{Kind: CondIf, Exp: exp}
		addIfCondition(el, exp, el)
		return
	}
	_, isElse := getAndRemoveAttr(el, "v-else", false)
	elseif, _ := getAndRemoveAttr(el, "v-else-if", false)
	switch {
	case elseif != "":
		el.Cond = &Condition{Kind: CondElseIf, Exp: elseif}
	case isElse:
		el.Cond = &Condition{Kind: CondElse}
	}
}

func processOnce(el *Element) {
	if _, ok := getAndRemoveAttr(el, "v-once", false); ok {
		el.Once = true
	}
}

// processElement resolves the remaining attributes. plain is decided before
// ref, slot and component bindings are consumed.
func processElement(el *Element) {
	processKey(el)
	el.Plain = el.Key == "" && len(el.AttrsList) == 0
	processRef(el)
	processSlot(el)
	processComponent(el)
	processAttrs(el)
}

func processKey(el *Element) {
	if exp, ok := getBindingAttr(el, "key"); ok {
		el.Key = exp
	}
}

func processRef(el *Element) {
	if ref, ok := getBindingAttr(el, "ref"); ok {
		el.Ref = &Ref{Name: ref, InFor: checkInFor(el)}
	}
}

// processSlot handles both <slot name="..."> outlets and content elements
// carrying a slot binding or a slot scope.
func processSlot(el *Element) {
	if el.Tag == "slot" {
		if name, ok := getBindingAttr(el, "name"); ok {
			slotOf(el).Name = name
		}
		return
	}

	var scope string
	if el.Tag == "template" {
		scope, _ = getAndRemoveAttr(el, "scope", false)
	}
	if scope == "" {
		scope, _ = getAndRemoveAttr(el, "slot-scope", false)
	}
	if scope != "" {
		slotOf(el).Scope = scope
	}

	if target, ok := getBindingAttr(el, "slot"); ok {
		if target == `""` {
			slotOf(el).Target = defaultSlot
		} else {
			slotOf(el).Target = target
		}
		if el.Tag != "template" {
			addAttr(el, "slot", target, true)
		}
	}
}

func slotOf(el *Element) *Slot {
	if el.Slot == nil {
		el.Slot = &Slot{}
	}
	return el.Slot
}

func processComponent(el *Element) {
	if binding, ok := getBindingAttr(el, "is"); ok {
		el.Component = binding
	}
	if _, ok := getAndRemoveAttr(el, "inline-template", false); ok {
		el.InlineTemplate = true
	}
}

// processAttrs classifies whatever is still pending. Modifiers stay part of
// the registered name.
func processAttrs(el *Element) {
	for _, a := range el.AttrsList {
		name, value := a.Name, a.Value
		if !isDirective(name) {
			addAttr(el, name, textparser.Quote(value), false)
			continue
		}
		el.HasBinding = true
		if rest, ok := cutAnyPrefix(name, ":", "v-bind:"); ok {
			addAttr(el, rest, value, true)
		} else if rest, ok := cutAnyPrefix(name, "@", "v-on:"); ok {
			addHandler(el, rest, value)
		} else {
			addDirective(el, strings.TrimPrefix(name, "v-"), name, value)
		}
	}
}

func isDirective(name string) bool {
	return strings.HasPrefix(name, "v-") || strings.HasPrefix(name, "@") || strings.HasPrefix(name, ":")
}

func cutAnyPrefix(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return s, false
}

// findPrevElement returns the last element child of parent. Text nodes found
// after it are removed from parent.
func findPrevElement(parent *Element) *Element {
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if el, ok := parent.Children[i].(*Element); ok {
			return el
		}
		parent.Children = parent.Children[:i]
	}
	return nil
}

// processIfConditions folds an else branch into the chain of its previous sibling
func processIfConditions(el, parent *Element) {
	if prev := findPrevElement(parent); prev != nil && prev.If() != "" {
		addIfCondition(prev, el.ElseIf(), el)
	}
}

// checkInFor reports whether el or any ancestor loops
func checkInFor(el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p.Loop != nil {
			return true
		}
	}
	return false
}
