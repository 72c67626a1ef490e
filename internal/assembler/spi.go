package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// SPI groups MOSI/MISO annotations into per-chip-select transfers.
//
// SPI has no start/stop framing; transfer annotations mark CS
// boundaries when the decoder emits them, otherwise everything folds
// into a single transfer. Renders lines like:
//
//	#001  MOSI>[A0 00 00] MISO<[FF 3C 80]
type SPI struct{}

func (SPI) Protocol() string { return "spi" }

type spiState struct {
	transfers []string
	mosi      []string
	miso      []string
}

func (st *spiState) flush() {
	if len(st.mosi) == 0 && len(st.miso) == 0 {
		return
	}
	var parts []string
	if len(st.mosi) > 0 {
		parts = append(parts, fmt.Sprintf("MOSI>[%s]", strings.Join(st.mosi, " ")))
	}
	if len(st.miso) > 0 {
		parts = append(parts, fmt.Sprintf("MISO<[%s]", strings.Join(st.miso, " ")))
	}
	st.transfers = append(st.transfers, strings.Join(parts, " "))
	st.mosi = nil
	st.miso = nil
}

func (SPI) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No SPI data decoded."
	}

	var st spiState

	for _, ann := range anns {
		switch {
		case strings.HasPrefix(ann, "MOSI transfer"), strings.HasPrefix(ann, "MISO transfer"):
			st.flush()
		case strings.HasPrefix(ann, "MOSI data"), isHexByte(ann):
			// mosi-data annotations vary across decoder versions:
			// sometimes "MOSI data: XX", sometimes a bare hex byte.
			val := ann
			if v := afterColon(ann); v != "" {
				val = v
			}
			st.mosi = append(st.mosi, strings.ToUpper(val))
		case strings.HasPrefix(ann, "MISO data"):
			if v := afterColon(ann); v != "" {
				st.miso = append(st.miso, strings.ToUpper(v))
			}
		}
	}

	st.flush()

	header := fmt.Sprintf("SPI: %d transfers", len(st.transfers))
	return render.NumberedList(header, st.transfers, max, "transfers")
}
