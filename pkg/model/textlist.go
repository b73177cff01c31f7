package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextList is an ordered list of non-empty strings. When decoded it also
// accepts a single scalar, which becomes a one-item list, and drops blank
// entries. It always encodes as a list, never as null.
type TextList []string

func NewTextList(items ...string) TextList {
	out := make(TextList, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether the list holds the exact literal v.
func (l TextList) Contains(v string) bool {
	for _, it := range l {
		if it == v {
			return true
		}
	}
	return false
}

func (l TextList) Clone() TextList {
	if l == nil {
		return TextList{}
	}
	out := make(TextList, len(l))
	copy(out, l)
	return out
}

func (l TextList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *TextList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = NewTextList(items...)
		return nil
	}
	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	if single == nil {
		*l = TextList{}
		return nil
	}
	*l = NewTextList(*single)
	return nil
}

func (l TextList) MarshalYAML() (interface{}, error) {
	if l == nil {
		return []string{}, nil
	}
	return []string(l), nil
}

func (l *TextList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = NewTextList(items...)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = TextList{}
			return nil
		}
		*l = NewTextList(value.Value)
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings, got %v", value.Line, value.Kind)
	}
	return nil
}

// StackText is a comma-separated list kept as one string. When decoded it
// also accepts a list, whose non-blank entries are joined with ", ".
type StackText string

func (s *StackText) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*s = JoinStack(items)
		return nil
	}
	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*s = ""
	if single != nil {
		*s = StackText(*single)
	}
	return nil
}

func (s *StackText) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*s = JoinStack(items)
	case yaml.ScalarNode:
		*s = ""
		if value.Tag != "!!null" {
			*s = StackText(value.Value)
		}
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings, got %v", value.Line, value.Kind)
	}
	return nil
}

// JoinStack joins the non-blank items with ", ".
func JoinStack(items []string) StackText {
	return StackText(strings.Join(NewTextList(items...), ", "))
}
