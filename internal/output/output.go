// Package output provides styled terminal output helpers (results, errors,
// JSON) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	resultStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var colorEnabled = true

// DisableColor turns off styling for all helpers; plain text is emitted.
func DisableColor() {
	colorEnabled = false
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// Result prints a computed result to stdout.
func Result(s string) {
	fmt.Println(render(resultStyle, s))
}

// Error prints an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, render(errorStyle, "error: "+fmt.Sprintf(format, args...)))
}

// Info prints an informational message to stdout.
func Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Subtle renders secondary text.
func Subtle(s string) string {
	return render(subtleStyle, s)
}

// Prompt renders prompt text for interactive views.
func Prompt(s string) string {
	return render(promptStyle, s)
}

// OK renders success text for interactive views.
func OK(s string) string {
	return render(okStyle, s)
}

// Err renders error text without printing it, for interactive views.
func Err(s string) string {
	return render(errorStyle, s)
}

// JSON writes v to stdout as indented JSON.
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// JSONResult writes a successful evaluation as JSON.
func JSONResult(expression, result string) error {
	return JSON(map[string]interface{}{
		"expression": expression,
		"result":     result,
	})
}

// JSONError writes an error as JSON to stdout with a machine-readable code.
func JSONError(code, message string) {
	data, _ := json.MarshalIndent(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, "", "  ")
	fmt.Println(string(data))
}
