package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func usbRaw(anns ...string) string {
	lines := make([]string, len(anns))
	for i, a := range anns {
		lines[i] = "usb_packet-1: " + a
	}
	return strings.Join(lines, "\n")
}

func TestUSBEmpty(t *testing.T) {
	assert.Equal(t, "No USB data decoded.", Summarize("", "usb_packet", 500))
}

func TestUSBTokenDataHandshake(t *testing.T) {
	raw := usbRaw(
		"IN ADDR 3 EP 1",
		"DATA1 [12 34]",
		"ACK",
		"OUT ADDR 3 EP 2",
		"DATA0 [AB]",
		"ACK",
	)
	result := Summarize(raw, "usb_packet", 500)

	assert.Contains(t, result, "USB: 2 transactions")
	assert.Contains(t, result, "#001  IN ADDR 3 EP 1 DATA1 [12 34] ACK")
	assert.Contains(t, result, "#002  OUT ADDR 3 EP 2 DATA0 [AB] ACK")
}

func TestUSBSOFCountedNotEmitted(t *testing.T) {
	raw := usbRaw(
		"SOF 100",
		"SOF 101",
		"IN ADDR 1 EP 1",
		"NAK",
		"SOF 102",
	)
	result := Summarize(raw, "usb_packet", 500)

	assert.Contains(t, result, "USB: 1 transactions (3 SOF)")
	assert.NotContains(t, result, "#001  SOF")
	assert.NotContains(t, result, "#002")
}

func TestUSBNakClosesTransaction(t *testing.T) {
	raw := usbRaw("IN ADDR 1 EP 1", "NAK", "IN ADDR 1 EP 1", "STALL")
	result := Summarize(raw, "usb_packet", 500)
	assert.Contains(t, result, "USB: 2 transactions")
	assert.Contains(t, result, "NAK")
	assert.Contains(t, result, "STALL")
}

func TestUSBStrayAnnotationsDropped(t *testing.T) {
	// Decoder chatter outside the token/data/handshake packets never
	// becomes a transaction of its own.
	raw := usbRaw("Some stray warning", "IN ADDR 3 EP 1", "ACK")
	result := Summarize(raw, "usb_packet", 500)

	assert.Contains(t, result, "USB: 1 transactions")
	assert.Contains(t, result, "#001  IN ADDR 3 EP 1 ACK")
	assert.NotContains(t, result, "stray")
}

func TestUSBTokenKeywordWholeWord(t *testing.T) {
	// "Invalid ..." must not read as an IN token.
	raw := usbRaw("Invalid packet CRC", "OUT ADDR 2 EP 1", "DATA0 [01]", "ACK")
	result := Summarize(raw, "usb_packet", 500)

	assert.Contains(t, result, "USB: 1 transactions")
	assert.NotContains(t, result, "Invalid")
}

func TestUSBDataWithoutTokenDropped(t *testing.T) {
	raw := usbRaw("DATA1 [12 34]", "IN ADDR 1 EP 1", "ACK")
	result := Summarize(raw, "usb_packet", 500)

	assert.Contains(t, result, "USB: 1 transactions")
	assert.Contains(t, result, "#001  IN ADDR 1 EP 1 ACK")
}

func TestUSBDanglingTokenFlushed(t *testing.T) {
	// Capture ends before the handshake.
	raw := usbRaw("SETUP ADDR 0 EP 0", "DATA0 [80 06 00 01]")
	result := Summarize(raw, "usb_packet", 500)
	assert.Contains(t, result, "USB: 1 transactions")
	assert.Contains(t, result, "SETUP ADDR 0 EP 0 DATA0 [80 06 00 01]")
}
