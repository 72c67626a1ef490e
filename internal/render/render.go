// Package render holds the generic output formatters shared by every
// protocol assembler: line truncation with a hidden-count footer, raw
// sample windowing, and the numbered transaction list shape.
//
// Raw logic analyzer output can be huge (128K samples x 16 channels);
// these functions keep every report bounded and LLM-readable.
package render

import (
	"fmt"
	"strings"
)

// Truncated caps protocol decoder output at maxLines and reports how
// many lines were hidden. It is the fallback view for protocols without
// a dedicated assembler.
func Truncated(raw string, maxLines int) string {
	if maxLines < 0 {
		maxLines = 0
	}
	lines := splitLines(raw)
	total := len(lines)

	if total == 0 {
		return "No protocol data decoded. Check channel mapping and decoder settings."
	}

	if total <= maxLines {
		return fmt.Sprintf("Decoded %d annotations:\n\n", total) + strings.Join(lines, "\n")
	}

	return fmt.Sprintf("Decoded %d annotations (showing first %d):\n\n", total, maxLines) +
		strings.Join(lines[:maxLines], "\n") +
		fmt.Sprintf("\n\n... (%d more lines truncated)", total-maxLines)
}

// Window extracts a bounded window of raw sample lines with position
// metadata. start is clamped to the available data; the window never
// runs past the end.
func Window(raw string, start, size int) string {
	lines := splitLines(raw)
	total := len(lines)

	if total == 0 {
		return "No sample data available."
	}

	if start < 0 {
		start = 0
	}
	if start > total-1 {
		start = total - 1
	}
	end := start + size
	if end > total {
		end = total
	}

	header := fmt.Sprintf("Samples %d-%d of %d total (showing %d samples):\n",
		start, end-1, total, end-start)
	return header + strings.Join(lines[start:end], "\n")
}

// NumberedList renders the body every assembler shares: up to max items
// as "#NNN  <item>" lines under the given header, with a footer naming
// how many items were hidden. max is inclusive — len(items) <= max never
// truncates.
func NumberedList(header string, items []string, max int, noun string) string {
	if max < 0 {
		max = 0
	}
	lines := []string{header, ""}

	shown := len(items)
	if shown > max {
		shown = max
	}
	for i, item := range items[:shown] {
		lines = append(lines, fmt.Sprintf("#%03d  %s", i+1, item))
	}

	if len(items) > max {
		lines = append(lines, fmt.Sprintf("\n... (%d more %s)", len(items)-max, noun))
	}

	return strings.Join(lines, "\n")
}

func splitLines(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
