package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/validator"
)

// Output formats accepted by the --output flag.
const (
	FormatHuman    = "human"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// DisplayResult writes a generate result. Markdown is the bare prompt text,
// suitable for piping into a file.
func DisplayResult(w io.Writer, result model.GenerateResult, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, result)
	case FormatYAML:
		return displayYAML(w, result)
	case FormatMarkdown, "md":
		_, err := fmt.Fprintln(w, result.PromptText)
		return err
	case FormatHuman:
		fallthrough
	default:
		displayHumanResult(w, result)
	}
	return nil
}

// DisplayReport writes a validation report.
func DisplayReport(w io.Writer, report validator.Report, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, report)
	case FormatYAML:
		return displayYAML(w, report)
	default:
		displayHumanReport(w, report)
	}
	return nil
}

// DisplayTechs writes a recommendation shortlist.
func DisplayTechs(w io.Writer, techs []string, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, map[string][]string{"techs": techs})
	case FormatYAML:
		return displayYAML(w, map[string][]string{"techs": techs})
	case FormatMarkdown, "md":
		for _, t := range techs {
			fmt.Fprintf(w, "- %s\n", t)
		}
	default:
		cyan := color.New(color.FgCyan, color.Bold)
		cyan.Fprintln(w, "💡 RECOMMENDED STACK:")
		for i, t := range techs {
			fmt.Fprintf(w, "   %d. %s\n", i+1, t)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "   %s\n", color.HiBlackString(strings.Join(techs, ", ")))
	}
	return nil
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHumanResult(w io.Writer, result model.GenerateResult) {
	white := color.New(color.FgWhite, color.Bold)

	displayHumanReport(w, validator.Report{Errors: result.Errors, Warnings: result.Warnings})

	if len(result.DecisionNeeded) > 0 {
		color.New(color.FgMagenta, color.Bold).Fprintf(w, "📝 DECISIONS NEEDED (%d):\n", len(result.DecisionNeeded))
		for _, name := range result.DecisionNeeded {
			label := name
			for _, f := range model.Fields {
				if f.Placeholder == name {
					label = fmt.Sprintf("%s (%s)", name, f.Label)
					break
				}
			}
			fmt.Fprintf(w, "   • %s\n", label)
		}
		fmt.Fprintln(w)
	}

	white.Fprintln(w, "📄 PROMPT:")
	fmt.Fprintln(w, result.PromptText)
	fmt.Fprintln(w)

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with --output markdown for the bare prompt, or json / yaml for machine-readable output"))
}

func displayHumanReport(w io.Writer, report validator.Report) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w)
	if len(report.Errors) == 0 {
		green.Fprintln(w, "✅ ALL REQUIRED FIELDS PRESENT")
		fmt.Fprintln(w)
	} else {
		red.Fprintf(w, "❌ ERRORS (%d):\n", len(report.Errors))
		for i, e := range report.Errors {
			fmt.Fprintf(w, "   %d. %s\n", i+1, color.RedString(e.Field))
			fmt.Fprintf(w, "      %s\n", e.Message)
		}
		fmt.Fprintln(w)
	}

	if len(report.Warnings) > 0 {
		yellow.Fprintf(w, "⚠️  WARNINGS (%d):\n", len(report.Warnings))
		for _, m := range report.Warnings {
			fmt.Fprintf(w, "   • %s: %s\n", color.YellowString(m.Field), m.Message)
		}
		fmt.Fprintln(w)
	}
}
