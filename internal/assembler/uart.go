package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

// UART groups rx-data/tx-data annotations into contiguous
// same-direction byte runs, with an ASCII rendering alongside the hex
// when the run contains printable characters:
//
//	TX> 48 65 6C 6C 6F  "Hello"
//	RX< 06
type UART struct{}

func (UART) Protocol() string { return "uart" }

type uartSegment struct {
	dir   string
	bytes []string
}

func (UART) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No UART data decoded."
	}
	if max < 0 {
		max = 0
	}

	var segments []uartSegment
	var cur uartSegment

	for _, ann := range anns {
		var dir string
		switch {
		case strings.HasPrefix(ann, "TX data"):
			dir = "TX"
		case strings.HasPrefix(ann, "RX data"):
			dir = "RX"
		default:
			continue
		}
		val := afterColon(ann)
		if val == "" {
			continue
		}

		if dir != cur.dir {
			if len(cur.bytes) > 0 {
				segments = append(segments, cur)
			}
			cur = uartSegment{dir: dir}
		}
		cur.bytes = append(cur.bytes, strings.ToUpper(val))
	}
	if len(cur.bytes) > 0 {
		segments = append(segments, cur)
	}

	totalBytes := 0
	for _, s := range segments {
		totalBytes += len(s.bytes)
	}

	lines := []string{fmt.Sprintf("UART: %d bytes in %d segments", totalBytes, len(segments)), ""}

	// Truncation here is a byte budget, not a segment count: UART
	// traffic is dominated by payload volume.
	byteCount := 0
	for _, seg := range segments {
		if byteCount >= max {
			lines = append(lines, fmt.Sprintf("\n... (truncated at %d bytes)", max))
			break
		}
		prefix := "RX<"
		if seg.dir == "TX" {
			prefix = "TX>"
		}
		hexStr := strings.Join(seg.bytes, " ")
		if ascii, ok := asciiRun(seg.bytes); ok {
			// Plain quotes around the raw characters; no escaping, a
			// quote byte in the payload appears as-is.
			lines = append(lines, fmt.Sprintf("%s %s  \"%s\"", prefix, hexStr, ascii))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s", prefix, hexStr))
		}
		byteCount += len(seg.bytes)
	}

	return strings.Join(lines, "\n")
}

// asciiRun renders a hex byte run as ASCII, mapping unprintable bytes
// to '.'. Reports false when no byte is printable or any byte fails to
// parse — then the hex alone is clearer.
func asciiRun(bytes []string) (string, bool) {
	var sb strings.Builder
	printable := false
	for _, b := range bytes {
		n, err := strconv.ParseUint(b, 16, 8)
		if err != nil {
			return "", false
		}
		if n >= 0x20 && n < 0x7F {
			sb.WriteByte(byte(n))
			printable = true
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String(), printable
}
