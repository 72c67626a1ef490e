package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uartRaw(anns ...string) string {
	lines := make([]string, len(anns))
	for i, a := range anns {
		lines[i] = "uart-1: " + a
	}
	return strings.Join(lines, "\n")
}

func TestUARTEmpty(t *testing.T) {
	assert.Equal(t, "No UART data decoded.", Summarize("", "uart", 2000))
}

func TestUARTDirectionSegments(t *testing.T) {
	raw := uartRaw("TX data: 48", "TX data: 69", "RX data: 06")
	result := Summarize(raw, "uart", 2000)

	assert.Contains(t, result, "UART: 3 bytes in 2 segments")
	assert.Contains(t, result, `TX> 48 69  "Hi"`)
	// 0x06 is unprintable and alone in its run — no ASCII column.
	assert.Contains(t, result, "RX< 06")
	assert.NotContains(t, result, `"."`)
}

func TestUARTMixedPrintable(t *testing.T) {
	raw := uartRaw("TX data: 48", "TX data: 00", "TX data: 69")
	result := Summarize(raw, "uart", 2000)
	assert.Contains(t, result, `TX> 48 00 69  "H.i"`)
}

func TestUARTSingleDirection(t *testing.T) {
	raw := uartRaw("RX data: 4F", "RX data: 4B")
	result := Summarize(raw, "uart", 2000)
	assert.Contains(t, result, "UART: 2 bytes in 1 segments")
	assert.Contains(t, result, `RX< 4F 4B  "OK"`)
}

func TestUARTByteBudgetTruncation(t *testing.T) {
	var anns []string
	for i := 0; i < 10; i++ {
		anns = append(anns, "TX data: 41", "RX data: 42")
	}
	result := Summarize(uartRaw(anns...), "uart", 4)

	assert.Contains(t, result, "UART: 20 bytes in 20 segments")
	assert.Contains(t, result, "... (truncated at 4 bytes)")
}

func TestUARTIgnoresOtherAnnotations(t *testing.T) {
	raw := uartRaw("Start bit", "TX data: 41", "Stop bit", "Frame error")
	result := Summarize(raw, "uart", 2000)
	assert.Contains(t, result, "UART: 1 bytes in 1 segments")
}

func TestUARTQuoteByteRenderedRaw(t *testing.T) {
	// A quote in the payload appears unescaped between the plain quotes.
	raw := uartRaw("TX data: 22", "TX data: 48")
	result := Summarize(raw, "uart", 2000)
	assert.Contains(t, result, `TX> 22 48  ""H"`)
}

func TestUARTLowercaseHexUppercased(t *testing.T) {
	raw := uartRaw("TX data: 4f", "TX data: 6b")
	result := Summarize(raw, "uart", 2000)
	assert.Contains(t, result, "TX> 4F 6B")
}
