package vtpl

import "strings"

// getAndRemoveAttr returns the value of name from the lookup map and drops the
// first matching entry from the pending list. The map entry is only deleted
// when removeFromMap is set.
func getAndRemoveAttr(el *Element, name string, removeFromMap bool) (string, bool) {
	val, ok := el.AttrsMap[name]
	if ok {
		for i, a := range el.AttrsList {
			if a.Name == name {
				el.AttrsList = append(el.AttrsList[:i], el.AttrsList[i+1:]...)
				break
			}
		}
	}
	if removeFromMap {
		delete(el.AttrsMap, name)
	}
	return val, ok
}

// getBindingAttr looks up :name, then v-bind:name. Both spellings are
// consumed; the first non-empty value wins and is returned trimmed.
func getBindingAttr(el *Element, name string) (string, bool) {
	short, _ := getAndRemoveAttr(el, ":"+name, false)
	long, _ := getAndRemoveAttr(el, "v-bind:"+name, false)

	val := short
	if val == "" {
		val = long
	}
	val = strings.TrimSpace(val)
	return val, val != ""
}

// addHandler registers value for the event name after any existing handlers
func addHandler(el *Element, name, value string) {
	if el.Events == nil {
		el.Events = make(map[string]Handlers)
	}
	el.Events[name] = append(el.Events[name], Handler{Value: value})
}

func addDirective(el *Element, name, rawName, value string) {
	el.Directives = append(el.Directives, Directive{Name: name, RawName: rawName, Value: value})
}

func addAttr(el *Element, name, value string, dynamic bool) {
	el.Attrs = append(el.Attrs, Prop{Name: name, Value: value, Dynamic: dynamic})
}

func addIfCondition(el *Element, exp string, block *Element) {
	el.IfConditions = append(el.IfConditions, IfCondition{Exp: exp, Block: block})
}
