package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// I2C groups start/stop-framed annotations into transactions.
//
// Expects the summary annotation filter output (start, repeat-start,
// stop, ack, nack, address-read/write, data-read/write) and renders
// lines like:
//
//	#001  W 0x59: [0B 00]
//	#002  W 0x59: [00] | R 0x59: [FF]
//
// A repeated start closes the current direction segment without closing
// the transaction, chaining segments with " | ".
type I2C struct{}

func (I2C) Protocol() string { return "i2c" }

// i2cState is the per-call accumulator: the segments of the open
// transaction plus the direction, address, and data bytes of the open
// segment.
type i2cState struct {
	transactions []string
	segments     []string
	dir          string
	addr         string
	data         []string
}

// flushSegment renders the open segment, if it has an address, and
// resets the segment fields.
func (st *i2cState) flushSegment() {
	if st.addr != "" {
		seg := fmt.Sprintf("%s 0x%s", st.dir, st.addr)
		if len(st.data) > 0 {
			seg += fmt.Sprintf(": [%s]", strings.Join(st.data, " "))
		}
		st.segments = append(st.segments, seg)
	}
	st.dir = ""
	st.addr = ""
	st.data = nil
}

// flushTransaction joins the accumulated segments into one transaction.
func (st *i2cState) flushTransaction() {
	if len(st.segments) > 0 {
		st.transactions = append(st.transactions, strings.Join(st.segments, " | "))
	}
	st.segments = nil
}

func (I2C) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No I2C data decoded."
	}

	var st i2cState
	devices := newFreqCounter()

	for _, ann := range anns {
		switch {
		case ann == "Start":
			st.flushSegment()
			st.flushTransaction()
		case ann == "Start repeat":
			st.flushSegment()
		case ann == "Stop":
			st.flushSegment()
			st.flushTransaction()
		case ann == "Write":
			st.dir = "W"
		case ann == "Read":
			st.dir = "R"
		case strings.HasPrefix(ann, "Address write: "), strings.HasPrefix(ann, "Address read: "):
			st.addr = afterColon(ann)
			devices.add(st.addr)
		case strings.HasPrefix(ann, "Data write: "), strings.HasPrefix(ann, "Data read: "):
			st.data = append(st.data, afterColon(ann))
		}
		// ACK/NACK carry no summary information.
	}

	// A capture cut off mid-transaction still gets reported.
	st.flushSegment()
	st.flushTransaction()

	addrs := devices.byFrequency()
	for i, a := range addrs {
		addrs[i] = "0x" + a
	}
	header := fmt.Sprintf("I2C: %d transactions, devices: %s",
		len(st.transactions), strings.Join(addrs, ", "))

	return render.NumberedList(header, st.transactions, max, "transactions")
}
