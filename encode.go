package vtpl

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// elementFields has Element's layout without its methods
type elementFields Element

// ifConditionView omits the block of the branch that owns the chain
type ifConditionView struct {
	Exp   string   `json:"exp,omitempty" yaml:"exp,omitempty"`
	Block *Element `json:"block,omitempty" yaml:"block,omitempty"`
}

type elementView struct {
	elementFields `yaml:",inline"`
	IfConditions  []ifConditionView `json:"ifConditions,omitempty" yaml:"ifConditions,omitempty"`
}

func (el *Element) view() elementView {
	v := elementView{elementFields: elementFields(*el)}
	for _, c := range el.IfConditions {
		cv := ifConditionView{Exp: c.Exp}
		if c.Block != el {
			cv.Block = c.Block
		}
		v.IfConditions = append(v.IfConditions, cv)
	}
	return v
}

// MarshalJSON encodes the element with its conditional branches inlined
func (el *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(el.view())
}

func (el *Element) MarshalYAML() (interface{}, error) {
	return el.view(), nil
}

// EncodeJSON writes root as indented JSON. Parent links are not written.
func EncodeJSON(w io.Writer, root *Element) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// EncodeYAML writes root as YAML
func EncodeYAML(w io.Writer, root *Element) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
