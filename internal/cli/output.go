package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/azdavis/c0ls/internal/analysis"
	"github.com/azdavis/c0ls/internal/textpos"
)

// ParsePosition parses a "<line>:<col>" flag value, both 1-based the way
// a terminal user names a position, into a zero-based Position.
func ParsePosition(s string) (textpos.Position, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return textpos.Position{}, CLIError{Code: ErrIO, Message: "position must be <line>:<col>, got " + s}
	}
	line, err := strconv.Atoi(parts[0])
	if err != nil || line < 1 {
		return textpos.Position{}, CLIError{Code: ErrIO, Message: "bad line number in " + s}
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 1 {
		return textpos.Position{}, CLIError{Code: ErrIO, Message: "bad column number in " + s}
	}
	return textpos.Position{Line: uint32(line - 1), Character: uint32(col - 1)}, nil
}

// diagnosticJSON mirrors Diagnostic for stable field names in JSON
// output, independent of however analysis.Diagnostic happens to be laid
// out internally.
type diagnosticJSON struct {
	File     string `json:"file"`
	Range    string `json:"range"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func severityName(s analysis.Severity) string {
	if s == analysis.SeverityWarning {
		return "warning"
	}
	return "error"
}

// PrintDiagnostics renders one file's diagnostics, either as aligned
// plain-text lines (file:range: severity: message) or as a JSON array,
// and reports whether any error-severity diagnostic was present — the
// caller uses that to choose between exit codes 0 and 1.
func PrintDiagnostics(file string, diags []analysis.Diagnostic, jsonOut bool) (hasError bool, out string) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Start.Less(diags[j].Range.Start)
	})
	for _, d := range diags {
		if d.Severity == analysis.SeverityError {
			hasError = true
		}
	}
	if jsonOut {
		rows := make([]diagnosticJSON, 0, len(diags))
		for _, d := range diags {
			rows = append(rows, diagnosticJSON{
				File:     file,
				Range:    d.Range.String(),
				Severity: severityName(d.Severity),
				Message:  d.Message,
			})
		}
		b, _ := json.MarshalIndent(rows, "", "  ")
		return hasError, string(b) + "\n"
	}
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s:%s: %s: %s\n", file, d.Range, severityName(d.Severity), d.Message)
	}
	return hasError, b.String()
}

// PrintHover renders a hover string, text or JSON.
func PrintHover(text string, jsonOut bool) string {
	if jsonOut {
		b, _ := json.Marshal(map[string]string{"contents": text})
		return string(b) + "\n"
	}
	return text + "\n"
}

// PrintDef renders a go-to-definition result, text or JSON.
func PrintDef(defURI string, r textpos.Range, jsonOut bool) string {
	if jsonOut {
		b, _ := json.Marshal(map[string]string{"file": defURI, "range": r.String()})
		return string(b) + "\n"
	}
	return fmt.Sprintf("%s:%s\n", defURI, r)
}
