package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DoPrefix   = "DO:"
	DontPrefix = "DON'T:"
)

// DoDontText packs two lists as "DO:" / "DON'T:" prefixed lines. When
// decoded it also accepts a mapping {do: [...], dont: [...]}, which is packed
// with JoinDoDont. It always encodes as the packed string.
type DoDontText string

type doDontLists struct {
	Do   TextList `json:"do" yaml:"do"`
	Dont TextList `json:"dont" yaml:"dont"`
}

func (d *DoDontText) UnmarshalJSON(data []byte) error {
	var lists doDontLists
	if err := json.Unmarshal(data, &lists); err == nil {
		*d = JoinDoDont(lists.Do, lists.Dont)
		return nil
	}
	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a string or a {do, dont} object: %w", err)
	}
	*d = ""
	if single != nil {
		*d = DoDontText(*single)
	}
	return nil
}

func (d *DoDontText) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var lists doDontLists
		if err := value.Decode(&lists); err != nil {
			return err
		}
		*d = JoinDoDont(lists.Do, lists.Dont)
	case yaml.ScalarNode:
		*d = ""
		if value.Tag != "!!null" {
			*d = DoDontText(value.Value)
		}
	default:
		return fmt.Errorf("line %d: expected a string or a {do, dont} mapping, got %v", value.Line, value.Kind)
	}
	return nil
}

// SplitDoDont decodes the packed do_dont field. Each line is trimmed; lines
// starting with "DO:" go to must and lines starting with "DON'T:" go to
// mustNot, prefix and following spaces removed. Other lines, and prefixes with
// nothing after them, are dropped.
func SplitDoDont(raw string) (must, mustNot []string) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, DoPrefix):
			if item := strings.TrimSpace(strings.TrimPrefix(line, DoPrefix)); item != "" {
				must = append(must, item)
			}
		case strings.HasPrefix(line, DontPrefix):
			if item := strings.TrimSpace(strings.TrimPrefix(line, DontPrefix)); item != "" {
				mustNot = append(mustNot, item)
			}
		}
	}
	return must, mustNot
}

// JoinDoDont is the inverse of SplitDoDont. Blank items are dropped.
func JoinDoDont(must, mustNot []string) DoDontText {
	lines := make([]string, 0, len(must)+len(mustNot))
	for _, m := range NewTextList(must...) {
		lines = append(lines, DoPrefix+" "+m)
	}
	for _, m := range NewTextList(mustNot...) {
		lines = append(lines, DontPrefix+" "+m)
	}
	return DoDontText(strings.Join(lines, "\n"))
}
