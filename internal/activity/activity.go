// Package activity summarizes captured sample data per channel.
//
// It consumes sigrok bits-format export output and reports, for each
// channel, the percentage of samples high, the number of edge
// transitions, and a coarse activity classification. Useful for quickly
// spotting which probe lines actually carry a signal.
package activity

import (
	"fmt"
	"strings"
)

// ChannelStat holds the per-channel counters derived from one channel's
// concatenated bit string.
type ChannelStat struct {
	Name      string
	Total     int
	HighCount int
	EdgeCount int
}

// Activity classifies the channel from its counters.
func (s ChannelStat) Activity() string {
	switch {
	case s.EdgeCount > 0:
		return "active"
	case s.HighCount == s.Total:
		return "always high"
	case s.HighCount == 0:
		return "always low"
	default:
		return "static"
	}
}

// Summarize analyzes bits-format sample output and renders a per-channel
// activity table.
//
// Two input shapes are accepted:
//
//	A0:11111111 00001111 ...   labeled rows; groups of bits per line,
//	                           repeated lines per label concatenate
//	10                         unlabeled fixed-width rows; column index
//	01                         selects the channel
//
// Header lines that do not parse as bit data are skipped. The whole
// channel is treated as one continuous timeline when counting edges,
// not per line.
func Summarize(raw string) string {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return "No sample data to summarize."
	}

	stats := parseChannels(lines)
	if len(stats) == 0 {
		return "No sample data to summarize (could not parse channel data)."
	}

	totalSamples := stats[0].Total

	out := []string{
		fmt.Sprintf("Capture summary: %d samples, %d channels", totalSamples, len(stats)),
		"",
		fmt.Sprintf("%-10s %8s %8s   %s", "Channel", "High %", "Edges", "Activity"),
		strings.Repeat("-", 45),
	}

	for _, s := range stats {
		pctHigh := 0.0
		if s.Total > 0 {
			pctHigh = float64(s.HighCount) / float64(s.Total) * 100
		}
		out = append(out, fmt.Sprintf("%-10s %7.1f%% %8d   %s", s.Name, pctHigh, s.EdgeCount, s.Activity()))
	}

	return strings.Join(out, "\n")
}

// parseChannels collects bit strings per channel and folds them into
// counters, preserving first-seen channel order.
func parseChannels(lines []string) []ChannelStat {
	bits := map[string]*strings.Builder{}
	var order []string

	appendBits := func(name, b string) {
		sb, ok := bits[name]
		if !ok {
			sb = &strings.Builder{}
			bits[name] = sb
			order = append(order, name)
		}
		sb.WriteString(b)
	}

	for _, line := range lines {
		if label, data, ok := strings.Cut(line, ":"); ok {
			data = strings.TrimSpace(data)
			if data == "" || !isBitGroups(data) {
				continue
			}
			appendBits(strings.TrimSpace(label), strings.ReplaceAll(data, " ", ""))
			continue
		}

		// Unlabeled fixed-width row: one sample per line, one channel
		// per column.
		if !isBits(line) {
			continue
		}
		for i, c := range line {
			appendBits(fmt.Sprintf("ch%d", i), string(c))
		}
	}

	stats := make([]ChannelStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, countBits(name, bits[name].String()))
	}
	return stats
}

func countBits(name, all string) ChannelStat {
	s := ChannelStat{Name: name, Total: len(all)}
	for i := 0; i < len(all); i++ {
		if all[i] == '1' {
			s.HighCount++
		}
		if i > 0 && all[i] != all[i-1] {
			s.EdgeCount++
		}
	}
	return s
}

// isBitGroups reports whether data contains only 0, 1, and spaces.
func isBitGroups(data string) bool {
	for _, c := range data {
		if c != '0' && c != '1' && c != ' ' {
			return false
		}
	}
	return true
}

func isBits(line string) bool {
	if line == "" {
		return false
	}
	for _, c := range line {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

func splitLines(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
