package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// CAN groups sof/eof-framed annotations into frames:
//
//	#001  ID=0x392 [40 05 30 FF] DLC=4
//	#002  ID=0x1FFFFF00 DLC=0 RTR
//
// An extended or full identifier wins over the standard identifier when
// both are present in one frame.
type CAN struct{}

func (CAN) Protocol() string { return "can" }

type canState struct {
	frames []string
	open   bool
	stdID  string
	extID  string
	dlc    string
	data   []string
	rtr    bool
}

func (st *canState) reset() {
	st.open = false
	st.stdID = ""
	st.extID = ""
	st.dlc = ""
	st.data = nil
	st.rtr = false
}

func (st *canState) flush() {
	if !st.open {
		return
	}
	id := st.extID
	if id == "" {
		id = st.stdID
	}
	var parts []string
	if id != "" {
		parts = append(parts, "ID=0x"+id)
	}
	if len(st.data) > 0 {
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(st.data, " ")))
	}
	if st.dlc != "" {
		parts = append(parts, "DLC="+st.dlc)
	}
	if st.rtr {
		parts = append(parts, "RTR")
	}
	if len(parts) > 0 {
		st.frames = append(st.frames, strings.Join(parts, " "))
	}
	st.reset()
}

func (CAN) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No CAN data decoded."
	}

	var st canState

	for _, ann := range anns {
		switch {
		case strings.HasPrefix(ann, "Start of frame"):
			// A dangling open frame means the decoder never saw its
			// end-of-frame; report it anyway.
			st.flush()
			st.reset()
			st.open = true
		case strings.HasPrefix(ann, "End of frame"):
			st.flush()
		case strings.HasPrefix(ann, "Full Identifier: "), strings.HasPrefix(ann, "Extended Identifier: "):
			if id, ok := identifierHex(ann); ok {
				st.extID = id
			}
		// "Identifier: " only — the identifier extension bit annotation
		// shares the prefix and must not clobber the standard ID.
		case strings.HasPrefix(ann, "Identifier: "), strings.HasPrefix(ann, "ID: "):
			if id, ok := identifierHex(ann); ok {
				st.stdID = id
			}
		case strings.HasPrefix(ann, "Remote transmission request"):
			st.rtr = strings.Contains(ann, "remote")
		case strings.HasPrefix(ann, "Data length code"):
			st.dlc = afterColon(ann)
		case strings.HasPrefix(ann, "Data byte"):
			if v := afterColon(ann); v != "" {
				st.data = append(st.data, stripHexPrefix(v))
			}
		}
	}

	st.flush()

	header := fmt.Sprintf("CAN: %d frames", len(st.frames))
	return render.NumberedList(header, st.frames, max, "frames")
}

// identifierHex pulls the hex form of an identifier annotation.
// Decoders write "Identifier: 914 (0x392)"; the parenthesized hex is
// authoritative, with the plain decimal value as fallback.
func identifierHex(ann string) (string, bool) {
	if hex, ok := parenHex(ann); ok {
		return hex, true
	}
	val := afterColon(ann)
	if val == "" {
		return "", false
	}
	val = strings.Fields(val)[0]
	if digits, found := strings.CutPrefix(val, "0x"); found {
		return strings.ToUpper(digits), true
	}
	if n, err := strconv.ParseUint(val, 10, 32); err == nil {
		return strings.ToUpper(strconv.FormatUint(n, 16)), true
	}
	return "", false
}
