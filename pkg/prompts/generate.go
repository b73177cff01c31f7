package prompts

import (
	"fmt"
	"strings"

	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/validator"
)

const (
	appendixDecisions = "## 부록 A. 결정 필요 항목"
	appendixWarnings  = "## 부록 B. 입력 경고"
	noneItem          = "- 없음"
)

// Marker returns the decision marker for a placeholder,
// e.g. "[결정 필요: ENVS]".
func Marker(placeholder string) string {
	return fmt.Sprintf("[결정 필요: %s]", placeholder)
}

// Generate renders MasterTemplate for in. A placeholder whose value is blank,
// or whose field failed a required rule, becomes a decision marker and is
// listed in DecisionNeeded. The result is deterministic and in is not
// modified.
func Generate(in model.ProjectInput) model.GenerateResult {
	report := validator.Validate(in)
	failed := report.ErrorFields()

	decisions := []string{}
	pairs := make([]string, 0, 2*len(model.Fields))
	for _, f := range model.Fields {
		rendered := FormatField(f, f.Value(&in))
		if strings.TrimSpace(rendered) == "" || failed[f.Path] {
			rendered = Marker(f.Placeholder)
			decisions = append(decisions, f.Placeholder)
		}
		pairs = append(pairs, "{"+f.Placeholder+"}", rendered)
	}

	// strings.Replacer makes one pass, so values are never re-scanned.
	var buf strings.Builder
	buf.WriteString(strings.NewReplacer(pairs...).Replace(MasterTemplate))
	writeAppendix(&buf, decisions, report.Warnings)

	return model.GenerateResult{
		PromptText:     buf.String(),
		DecisionNeeded: decisions,
		Errors:         report.Errors,
		Warnings:       report.Warnings,
	}
}

func writeAppendix(buf *strings.Builder, decisions []string, warnings []model.ValidationMessage) {
	buf.WriteString("\n---\n\n")
	buf.WriteString(appendixDecisions)
	buf.WriteString("\n\n")
	if len(decisions) == 0 {
		buf.WriteString(noneItem + "\n")
	}
	for _, name := range decisions {
		f, _ := fieldByPlaceholder(name)
		fmt.Fprintf(buf, "- [ ] %s (%s)\n", name, f.Label)
	}

	buf.WriteString("\n")
	buf.WriteString(appendixWarnings)
	buf.WriteString("\n\n")
	if len(warnings) == 0 {
		buf.WriteString(noneItem + "\n")
	}
	for _, w := range warnings {
		fmt.Fprintf(buf, "- `%s`: %s\n", w.Field, w.Message)
	}
}

func fieldByPlaceholder(name string) (model.Field, bool) {
	for _, f := range model.Fields {
		if f.Placeholder == name {
			return f, true
		}
	}
	return model.Field{}, false
}

// FormatField renders a value for its slot in the template. Lists become
// bullet lines, or a comma-joined run inside table cells. do_dont is split
// into MUST / MUST NOT blocks.
func FormatField(f model.Field, v model.Value) string {
	if f.Path == "claude_rules.do_dont" {
		return formatDoDont(v.Text)
	}
	if v.Kind == model.KindList {
		if f.Inline {
			return escapeCell(strings.Join(v.List, ", "))
		}
		return bullets(v.List)
	}
	if f.Inline {
		return escapeCell(oneLine(v.Text))
	}
	return v.Text
}

func formatDoDont(raw string) string {
	must, mustNot := model.SplitDoDont(raw)
	var blocks []string
	if len(must) > 0 {
		blocks = append(blocks, "#### MUST\n"+bullets(must))
	}
	if len(mustNot) > 0 {
		blocks = append(blocks, "#### MUST NOT\n"+bullets(mustNot))
	}
	return strings.Join(blocks, "\n\n")
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			lines = append(lines, "- "+it)
		}
	}
	return strings.Join(lines, "\n")
}

func oneLine(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " / ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
