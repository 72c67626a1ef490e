package assembler

import (
	"fmt"

	"github.com/crimson-sun/sigsum/internal/render"
)

// PassThrough covers command-stream decoders (AVR-ISP, SPI flash,
// SD card) whose annotations are already one operation per line. The
// only reduction is collapsing adjacent duplicates — polling loops
// repeat the same command thousands of times:
//
//	#001  Command: Read status register
//	#002  Status: busy
type PassThrough struct {
	protocol string
	name     string
}

func (p PassThrough) Protocol() string { return p.protocol }

func (p PassThrough) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return fmt.Sprintf("No %s data decoded.", p.name)
	}

	var ops []string
	for _, ann := range anns {
		if len(ops) > 0 && ops[len(ops)-1] == ann {
			continue
		}
		ops = append(ops, ann)
	}

	header := fmt.Sprintf("%s: %d operations", p.name, len(ops))
	return render.NumberedList(header, ops, max, "operations")
}
