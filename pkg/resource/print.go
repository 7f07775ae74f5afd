package resource

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v2"
)

// Print writes the report in the given output format (string, json or yaml).
func Print(w io.Writer, r *Report, outputType string) error {
	switch strings.ToLower(outputType) {
	case "string":
		printString(w, r)
		return nil
	case "json":
		return printJson(w, r)
	case "yaml":
		return printYaml(w, r)
	default:
		return fmt.Errorf("unsupported output type: %s", outputType)
	}
}

func printString(w io.Writer, r *Report) {
	var kind Kind

	for _, e := range r.All() {
		if e.Ref.Kind != kind {
			if kind != 0 {
				fmt.Fprint(w, "\t---\n\n")
			}
			kind = e.Ref.Kind
			fmt.Fprintf(w, "\n\t---\n\tType: %s\n\tFound: %d\n\n", kind, countKind(r, kind))
		}

		printStat := fmt.Sprintf("\t\tId:\t\t%s\n\t\tOutcome:\t%s", e.Ref.ID, colorOutcome(e.Outcome))
		if e.Ref.Parent != "" {
			printStat += fmt.Sprintf("\n\t\tParent:\t\t%s", e.Ref.Parent)
		}
		if e.Outcome.Message != "" {
			printStat += fmt.Sprintf("\n\t\tMessage:\t%s", e.Outcome.Message)
		}
		fmt.Fprintln(w, printStat)
	}
	if kind != 0 {
		fmt.Fprint(w, "\t---\n\n")
	}

	for _, lf := range r.ListFailures {
		fmt.Fprint(w, color.RedString("\tfailed to list %s: %s\n", lf.Kind, lf.Message))
	}
}

func countKind(r *Report, kind Kind) int {
	n := 0
	for _, e := range r.All() {
		if e.Ref.Kind == kind {
			n++
		}
	}
	return n
}

func colorOutcome(o Outcome) string {
	switch o.Status {
	case Deleted, AlreadyGone:
		return color.GreenString("%s", o)
	case Failed:
		return color.RedString("%s", o)
	default:
		return color.YellowString("%s", o)
	}
}

func printJson(w io.Writer, r *Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report into JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printYaml(w io.Writer, r *Report) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report into YAML: %w", err)
	}

	_, err = fmt.Fprint(w, string(b))
	return err
}
