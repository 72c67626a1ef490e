package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// OneWire groups onewire_network annotations into reset-framed
// transactions:
//
//	#001  Read ROM ROM=3A00000012345628 [12 45]
//
// Every reset/presence pulse closes the previous transaction and opens
// the next. ROM codes double as the device identity for the header's
// devices summary.
type OneWire struct{}

func (OneWire) Protocol() string { return "onewire_network" }

type onewireState struct {
	transactions []string
	cmd          string
	rom          string
	data         []string
}

func (st *onewireState) flush() {
	var parts []string
	if st.cmd != "" {
		parts = append(parts, st.cmd)
	}
	if st.rom != "" {
		parts = append(parts, "ROM="+st.rom)
	}
	if len(st.data) > 0 {
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(st.data, " ")))
	}
	if len(parts) > 0 {
		st.transactions = append(st.transactions, strings.Join(parts, " "))
	}
	st.cmd = ""
	st.rom = ""
	st.data = nil
}

func (OneWire) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No 1-Wire data decoded."
	}

	var st onewireState
	devices := newFreqCounter()

	for _, ann := range anns {
		switch {
		case strings.HasPrefix(ann, "Reset/presence"):
			st.flush()
		case strings.HasPrefix(ann, "ROM command"):
			// "ROM command: 0x33 'Read ROM'" — the quoted name is the
			// readable part.
			if name, ok := quoted(ann); ok {
				st.cmd = name
			} else if v := afterColon(ann); v != "" {
				st.cmd = v
			}
		case strings.HasPrefix(ann, "ROM: "):
			st.rom = stripHexPrefix(afterColon(ann))
			devices.add(st.rom)
		case strings.HasPrefix(ann, "Data: "):
			st.data = append(st.data, stripHexPrefix(afterColon(ann)))
		}
	}

	st.flush()

	header := fmt.Sprintf("1-Wire: %d transactions, devices: %s",
		len(st.transactions), strings.Join(devices.byFrequency(), ", "))
	return render.NumberedList(header, st.transactions, max, "transactions")
}
