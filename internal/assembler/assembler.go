// Package assembler reconstructs protocol-level transactions from
// decoder annotation streams.
//
// Each supported protocol has one Assembler: a single-pass,
// left-to-right fold over the annotation values that groups them into
// semantic records (an I2C transaction, a CAN frame, a UART byte run)
// and renders a bounded, numbered report. Assemblers never look ahead,
// never error, and tolerate annotation text they do not recognize —
// decoder output drifts slightly across versions and a summary must
// survive that.
package assembler

import (
	"sort"

	"github.com/crimson-sun/sigsum/internal/annotation"
	"github.com/crimson-sun/sigsum/internal/render"
)

// Assembler folds one protocol's annotation values into a transaction
// summary. Implementations hold no state between calls; all accumulator
// state lives in a per-call state struct.
type Assembler interface {
	// Protocol returns the decoder identifier this assembler handles.
	Protocol() string

	// Summarize renders at most max transactions from the annotation
	// values, in input order. Empty input yields a protocol-specific
	// "no data decoded" message, never an empty string.
	Summarize(anns []string, max int) string
}

// table is the full set of protocol assemblers. A static map literal so
// the supported protocols are auditable at a glance and adding one
// cannot bypass the Assembler interface.
var table = map[string]Assembler{
	"i2c":             I2C{},
	"spi":             SPI{},
	"uart":            UART{},
	"can":             CAN{},
	"onewire_network": OneWire{},
	"mdio":            MDIO{},
	"usb_packet":      USB{},
	"dcf77":           DCF77{},
	"am230x":          AM230x{},
	"avr_isp":         PassThrough{protocol: "avr_isp", name: "AVR-ISP"},
	"spiflash":        PassThrough{protocol: "spiflash", name: "SPI flash"},
	"sdcard_sd":       PassThrough{protocol: "sdcard_sd", name: "SD card"},
}

// For returns the assembler registered for the given protocol.
func For(protocol string) (Assembler, bool) {
	a, ok := table[protocol]
	return a, ok
}

// Protocols returns the sorted list of protocols with a dedicated
// assembler.
func Protocols() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summarize tokenizes raw decoder output and dispatches to the
// protocol's assembler. Protocols without one fall back to the generic
// truncating formatter over the raw lines.
func Summarize(raw, protocol string, max int) string {
	a, ok := table[protocol]
	if !ok {
		return render.Truncated(raw, max)
	}
	return a.Summarize(annotation.Values(raw), max)
}
