package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// MDIO renders management-frame annotations. Each READ/WRITE annotation
// is a complete, self-terminating operation — there is no accumulator
// state to flush:
//
//	#001  READ  PHY=0x01 REG=0x02 -> 0x796D
type MDIO struct{}

func (MDIO) Protocol() string { return "mdio" }

func (MDIO) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No MDIO data decoded."
	}

	var ops []string
	for _, ann := range anns {
		var op string
		switch {
		case strings.HasPrefix(ann, "READ:"):
			op = "READ"
		case strings.HasPrefix(ann, "WRITE:"):
			op = "WRITE"
		default:
			continue
		}

		// The remainder carries PHY address, register address, and data
		// as 0x-prefixed fields, in that order.
		words := hexWords(ann)
		phy, reg, data := "??", "??", "????"
		if len(words) > 0 {
			phy = words[0]
		}
		if len(words) > 1 {
			reg = words[1]
		}
		if len(words) > 2 {
			data = words[len(words)-1]
		}
		ops = append(ops, fmt.Sprintf("%-5s PHY=0x%s REG=0x%s -> 0x%s", op, phy, reg, data))
	}

	header := fmt.Sprintf("MDIO: %d operations", len(ops))
	return render.NumberedList(header, ops, max, "operations")
}
