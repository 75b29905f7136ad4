// Package output renders tasks for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
	"todo/internal/todolist"
)

// Format selects how a snapshot is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// FormatTask writes one numbered task line.
// Format: "{N:>4}  [ ] {TEXT}\n", with [x] for completed tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeText(task.Text))
}

// FormatRemaining writes the remaining-count footer.
func FormatRemaining(w io.Writer, n int) {
	fmt.Fprintln(w, Remaining(n))
}

// Remaining returns the footer text, e.g. "2 task(s) remaining".
func Remaining(n int) string {
	return fmt.Sprintf("%d task(s) remaining", n)
}

// WriteSnapshot renders a whole snapshot in the given format.
func WriteSnapshot(w io.Writer, snap todolist.Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshotDoc(snap))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshotDoc(snap)); err != nil {
			return err
		}
		return enc.Close()
	}
	for i, task := range snap.Tasks {
		FormatTask(w, i+1, task)
	}
	FormatRemaining(w, snap.RemainingCount)
	return nil
}

// snapshotDoc keeps an empty list encoded as [] rather than null.
func snapshotDoc(snap todolist.Snapshot) todolist.Snapshot {
	if snap.Tasks == nil {
		snap.Tasks = []service.Task{}
	}
	return snap
}

// normalizeText puts multi-line text on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
