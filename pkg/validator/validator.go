// Package validator checks a ProjectInput against the fixed required-field
// rules. Errors block a complete document; warnings flag optional fields
// that will be marked as needing a decision.
package validator

import (
	"fmt"

	"github.com/2riing/vibe-promptgen/pkg/model"
)

const (
	MsgMissing     = "필수 입력이 누락되었습니다."
	MsgUnfilled    = "미입력 — 결정 필요로 표시됩니다."
	msgMinItems    = "최소 %d개 항목이 필요합니다. (현재 %d개)"
	msgMustInclude = "'%s' 항목이 포함되어야 합니다."
)

// RuleKind is the shape a required field is checked as.
type RuleKind string

const (
	RuleText       RuleKind = "str"
	RuleList       RuleKind = "list"
	RuleTextOrList RuleKind = "str_or_list"
)

// Rule is one row of the required-field table.
type Rule struct {
	Path        string
	Kind        RuleKind
	MinLen      int
	MustContain string
}

// Required is evaluated in order; every rule runs.
var Required = []Rule{
	{Path: "context.product_one_liner", Kind: RuleText},
	{Path: "context.core_scenarios", Kind: RuleList, MinLen: 2},
	{Path: "context.top_risks", Kind: RuleList, MinLen: 2},
	{Path: "tech.tech_stack", Kind: RuleTextOrList},
	{Path: "tech.deployment", Kind: RuleText},
	{Path: "tech.envs", Kind: RuleList, MinLen: 1, MustContain: "dev"},
}

// Report holds the outcome of Validate. Both slices are non-nil.
type Report struct {
	Errors   []model.ValidationMessage `json:"errors" yaml:"errors"`
	Warnings []model.ValidationMessage `json:"warnings" yaml:"warnings"`
}

// HasErrors reports whether any required rule failed.
func (r Report) HasErrors() bool { return len(r.Errors) > 0 }

// ErrorFields returns the set of paths that failed a required rule.
func (r Report) ErrorFields() map[string]bool {
	out := make(map[string]bool, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = true
	}
	return out
}

func isRequired(path string) bool {
	for _, r := range Required {
		if r.Path == path {
			return true
		}
	}
	return false
}

// Validate applies the required rules, then warns once for every other
// field that is blank.
func Validate(in model.ProjectInput) Report {
	report := Report{
		Errors:   []model.ValidationMessage{},
		Warnings: []model.ValidationMessage{},
	}

	for _, rule := range Required {
		val, ok := in.Lookup(rule.Path)
		if msg := check(rule, val, ok); msg != "" {
			report.Errors = append(report.Errors, model.ValidationMessage{
				Level:   model.LevelError,
				Field:   rule.Path,
				Message: msg,
			})
		}
	}

	for _, f := range model.Fields {
		if isRequired(f.Path) {
			continue
		}
		if f.Value(&in).IsEmpty() {
			report.Warnings = append(report.Warnings, model.ValidationMessage{
				Level:   model.LevelWarn,
				Field:   f.Path,
				Message: MsgUnfilled,
			})
		}
	}

	return report
}

// check returns the first violation of rule, or "".
func check(rule Rule, val model.Value, ok bool) string {
	if !ok || val.IsEmpty() {
		return MsgMissing
	}
	if rule.Kind != RuleList {
		return ""
	}
	if val.Kind != model.KindList {
		return MsgMissing
	}
	if rule.MinLen > 0 && len(val.List) < rule.MinLen {
		return fmt.Sprintf(msgMinItems, rule.MinLen, len(val.List))
	}
	if rule.MustContain != "" && !val.List.Contains(rule.MustContain) {
		return fmt.Sprintf(msgMustInclude, rule.MustContain)
	}
	return ""
}
