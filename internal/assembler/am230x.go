package assembler

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/sigsum/internal/render"
)

// AM230x groups sensor-frame annotations into readings. The checksum
// annotation terminates each reading:
//
//	#001  Temp=23.1°C Humidity=65.2% Checksum=OK
type AM230x struct{}

func (AM230x) Protocol() string { return "am230x" }

type am230xState struct {
	readings    []string
	humidity    string
	temperature string
	checksum    string
}

func (st *am230xState) flush() {
	var parts []string
	if st.temperature != "" {
		parts = append(parts, "Temp="+st.temperature)
	}
	if st.humidity != "" {
		parts = append(parts, "Humidity="+st.humidity)
	}
	if st.checksum != "" {
		parts = append(parts, "Checksum="+st.checksum)
	}
	if len(parts) > 0 {
		st.readings = append(st.readings, strings.Join(parts, " "))
	}
	st.humidity = ""
	st.temperature = ""
	st.checksum = ""
}

func (AM230x) Summarize(anns []string, max int) string {
	if len(anns) == 0 {
		return "No AM230x data decoded."
	}

	var st am230xState

	for _, ann := range anns {
		switch {
		case strings.HasPrefix(ann, "Humidity"):
			st.humidity = compactValue(afterColon(ann))
		case strings.HasPrefix(ann, "Temperature"):
			st.temperature = compactValue(afterColon(ann))
		case strings.HasPrefix(ann, "Checksum"):
			st.checksum = afterColon(ann)
			st.flush()
		}
	}

	// A reading cut off before its checksum still gets reported.
	st.flush()

	header := fmt.Sprintf("AM230x: %d readings", len(st.readings))
	return render.NumberedList(header, st.readings, max, "readings")
}

// compactValue squeezes the space out of "65.2 %" style values.
func compactValue(v string) string {
	return strings.ReplaceAll(v, " ", "")
}
