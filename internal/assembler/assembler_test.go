package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForKnownProtocols(t *testing.T) {
	for _, proto := range Protocols() {
		a, ok := For(proto)
		require.True(t, ok, proto)
		assert.Equal(t, proto, a.Protocol())
	}
}

func TestProtocolsSorted(t *testing.T) {
	protos := Protocols()
	require.NotEmpty(t, protos)
	for i := 1; i < len(protos); i++ {
		assert.Less(t, protos[i-1], protos[i])
	}
}

func TestUnknownProtocolFallsBack(t *testing.T) {
	raw := "jtag-1: TDI bit\njtag-1: TDO bit"
	result := Summarize(raw, "jtag", 100)

	// Generic truncating formatter, raw lines preserved.
	assert.Contains(t, result, "Decoded 2 annotations")
	assert.Contains(t, result, "jtag-1: TDI bit")
}

func TestUnknownProtocolEmptyInput(t *testing.T) {
	assert.Contains(t, Summarize("", "jtag", 100), "No protocol data")
}

func TestSummarizeIdempotent(t *testing.T) {
	// No state leaks between calls: identical input and parameters
	// yield byte-identical output, protocol by protocol.
	inputs := map[string]string{
		"i2c":  "i2c-1: Start\ni2c-1: Write\ni2c-1: Address write: 50\ni2c-1: Data write: 0B\ni2c-1: Stop",
		"spi":  "spi-1: MOSI data: a0\nspi-1: MISO data: ff",
		"uart": "uart-1: TX data: 48\nuart-1: RX data: 06",
		"can":  "can-1: Start of frame\ncan-1: Identifier: 914 (0x392)\ncan-1: End of frame",
		"jtag": "jtag-1: TDI bit",
	}
	for proto, raw := range inputs {
		first := Summarize(raw, proto, 500)
		second := Summarize(raw, proto, 500)
		assert.Equal(t, first, second, proto)
	}
}

func TestAllAssemblersTotalOnGarbage(t *testing.T) {
	// The contract is total: every assembler produces defined output
	// for arbitrary garbage, and never an empty string.
	garbage := "x-1: \x00\xff not an annotation\nrandom line\nx-1: zz: qq"
	for _, proto := range Protocols() {
		result := Summarize(garbage, proto, 10)
		assert.NotEmpty(t, result, proto)
	}
}
