// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"
)

// FormatTask formats one task line.
// Format: "{ID:>4}  [{x| }] {TEXT}\n"
func FormatTask(w io.Writer, t task.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", t.ID, mark, normalizeText(t.Text))
}

// FormatTasks formats each task on its own line, in order.
func FormatTasks(w io.Writer, tasks []task.Task) {
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatSectionHeader formats a titled section header with an optional count.
// A negative count omits the "(N)" suffix.
func FormatSectionHeader(w io.Writer, title string, count int) {
	if count >= 0 {
		title = fmt.Sprintf("%s (%d)", title, count)
	}
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// normalizeText keeps a task on a single display line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}
