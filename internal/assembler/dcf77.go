package assembler

import (
	"fmt"
	"strings"
)

// DCF77 accumulates one time telegram across the whole stream — the
// decoder emits each date/time field once per minute-long telegram, so
// unlike the bus protocols there is nothing to frame:
//
//	DCF77: 6 fields decoded
//
//	Time: 12:34
//	Date: 2025-07-05 (Saturday)
type DCF77 struct{}

func (DCF77) Protocol() string { return "dcf77" }

func (DCF77) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No DCF77 data decoded."
	}

	fields := map[string]string{}
	// "Day of week" must match before "Day".
	prefixes := []string{"Minute", "Hour", "Day of week", "Day", "Month", "Year"}

	for _, ann := range anns {
		for _, p := range prefixes {
			if strings.HasPrefix(ann, p+": ") {
				if _, taken := fields[p]; !taken {
					fields[p] = afterColon(ann)
				}
				break
			}
		}
	}

	lines := []string{fmt.Sprintf("DCF77: %d fields decoded", len(fields)), ""}
	composed := map[string]bool{}

	if h, hok := fields["Hour"]; hok {
		if m, mok := fields["Minute"]; mok {
			lines = append(lines, fmt.Sprintf("Time: %s:%s", twoDigits(h), twoDigits(m)))
			composed["Hour"], composed["Minute"] = true, true
		}
	}
	if y, yok := fields["Year"]; yok {
		if mo, mok := fields["Month"]; mok {
			if d, dok := fields["Day"]; dok {
				date := fmt.Sprintf("Date: 20%s-%s-%s", twoDigits(y), twoDigits(mo), twoDigits(d))
				if dow, ok := fields["Day of week"]; ok {
					date += fmt.Sprintf(" (%s)", dow)
					composed["Day of week"] = true
				}
				lines = append(lines, date)
				composed["Year"], composed["Month"], composed["Day"] = true, true, true
			}
		}
	}

	// Fields present but not part of a composed line are listed as-is.
	for _, p := range prefixes {
		if v, ok := fields[p]; ok && !composed[p] {
			lines = append(lines, fmt.Sprintf("%s: %s", p, v))
		}
	}

	return strings.Join(lines, "\n")
}
