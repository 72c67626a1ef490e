package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// USB groups usb_packet annotations into token→data→handshake
// transactions. Start-of-frame packets are pure bus keepalive at 1 kHz
// and would drown everything else, so they are counted for the header
// and dropped from the body:
//
//	#001  IN ADDR 3 EP 1 DATA1 [12 34] ACK
type USB struct{}

func (USB) Protocol() string { return "usb_packet" }

type usbState struct {
	transactions []string
	parts        []string
}

func (st *usbState) flush() {
	if len(st.parts) > 0 {
		st.transactions = append(st.transactions, strings.Join(st.parts, " "))
	}
	st.parts = nil
}

func (USB) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No USB data decoded."
	}

	var st usbState
	sofCount := 0

	for _, ann := range anns {
		// Packet annotations lead with the PID keyword; matching the
		// whole first word keeps "Invalid ..." from reading as "IN".
		switch firstWord(ann) {
		case "SOF":
			sofCount++
		case "IN", "OUT", "SETUP":
			st.flush()
			st.parts = append(st.parts, ann)
		case "ACK", "NAK", "STALL", "NYET":
			st.parts = append(st.parts, ann)
			st.flush()
		case "DATA0", "DATA1", "DATA2":
			if len(st.parts) > 0 {
				st.parts = append(st.parts, ann)
			}
		}
		// Anything else is dropped: stray decoder chatter must not
		// surface as a transaction of its own.
	}

	st.flush()

	header := fmt.Sprintf("USB: %d transactions (%d SOF)", len(st.transactions), sofCount)
	return render.NumberedList(header, st.transactions, max, "transactions")
}
