package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func canRaw(anns ...string) string {
	lines := make([]string, len(anns))
	for i, a := range anns {
		lines[i] = "can-1: " + a
	}
	return strings.Join(lines, "\n")
}

func TestCANEmpty(t *testing.T) {
	assert.Equal(t, "No CAN data decoded.", Summarize("", "can", 500))
}

func TestCANStandardFrame(t *testing.T) {
	raw := canRaw(
		"Start of frame",
		"Identifier: 914 (0x392)",
		"Data length code: 2",
		"Data byte 0: 0x40",
		"Data byte 1: 0x05",
		"End of frame",
	)
	result := Summarize(raw, "can", 500)

	assert.Contains(t, result, "CAN: 1 frames")
	assert.Contains(t, result, "#001  ID=0x392 [40 05] DLC=2")
}

func TestCANExtendedIDPreferred(t *testing.T) {
	raw := canRaw(
		"Start of frame",
		"Identifier: 100 (0x064)",
		"Full Identifier: 419361281 (0x18FEE601)",
		"Data length code: 1",
		"Data byte 0: 0xAA",
		"End of frame",
	)
	result := Summarize(raw, "can", 500)
	assert.Contains(t, result, "ID=0x18FEE601")
	assert.NotContains(t, result, "ID=0x064")
}

func TestCANRemoteFrame(t *testing.T) {
	raw := canRaw(
		"Start of frame",
		"Identifier: 32 (0x020)",
		"Remote transmission request: remote frame",
		"Data length code: 0",
		"End of frame",
	)
	result := Summarize(raw, "can", 500)
	assert.Contains(t, result, "ID=0x020 DLC=0 RTR")
}

func TestCANDataFrameNotRTR(t *testing.T) {
	raw := canRaw(
		"Start of frame",
		"Identifier: 32 (0x020)",
		"Remote transmission request: data frame",
		"End of frame",
	)
	result := Summarize(raw, "can", 500)
	assert.NotContains(t, result, "RTR")
}

func TestCANDanglingFrameForceFlushed(t *testing.T) {
	// Second start-of-frame arrives while a frame is open; the open
	// frame is flushed, not lost. The trailing unterminated frame is
	// flushed at end of stream.
	raw := canRaw(
		"Start of frame",
		"Identifier: 1 (0x001)",
		"Start of frame",
		"Identifier: 2 (0x002)",
	)
	result := Summarize(raw, "can", 500)

	assert.Contains(t, result, "CAN: 2 frames")
	assert.Contains(t, result, "ID=0x001")
	assert.Contains(t, result, "ID=0x002")
}

func TestCANDecimalIdentifierFallback(t *testing.T) {
	// No parenthesized hex — the decimal value converts.
	raw := canRaw("Start of frame", "Identifier: 914", "End of frame")
	result := Summarize(raw, "can", 500)
	assert.Contains(t, result, "ID=0x392")
}

func TestCANFieldsWithoutFrameDropped(t *testing.T) {
	// Partial state with no start-of-frame is silently dropped.
	raw := canRaw("Identifier: 914 (0x392)", "Data byte 0: 0x40")
	result := Summarize(raw, "can", 500)
	assert.Contains(t, result, "CAN: 0 frames")
}
