package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pfrederiksen/baraj-doluluk/internal/reservoir"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// textTimeLayout is used for the capture time in text output
const textTimeLayout = "2006-01-02 15:04:05 MST"

// WriteOutput writes the snapshot in the specified format
func WriteOutput(w io.Writer, snap *reservoir.AggregateSnapshot, format OutputFormat) error {
	if snap == nil {
		return fmt.Errorf("no snapshot to write")
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, snap)
	case FormatText:
		return writeText(w, snap)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the snapshot as indented JSON
func writeJSON(w io.Writer, snap *reservoir.AggregateSnapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// writeText outputs the snapshot as human-readable text
func writeText(w io.Writer, snap *reservoir.AggregateSnapshot) error {
	fmt.Fprintf(w, "Dam occupancy as of %s\n", snap.Date.Format(textTimeLayout))

	for _, city := range snap.Cities {
		if city.Failed() {
			fmt.Fprintf(w, "\n%s: FAILED (%s)\n", city.Name, city.Error)
			continue
		}

		fmt.Fprintf(w, "\n%s (%d reservoirs):\n", city.Name, len(city.Data))
		if len(city.Data) == 0 {
			fmt.Fprintln(w, "  no data")
			continue
		}

		width := 0
		for _, rec := range city.Data {
			width = max(width, len([]rune(rec.Name)))
		}
		for _, rec := range city.Data {
			fmt.Fprintf(w, "  %s  %15s m³  %6.2f%%\n",
				padRight(rec.Name, width), groupThousands(rec.Capacity), rec.FilledPercentage)
		}
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d reservoirs across %d cities\n", snap.RecordCount(), len(snap.Cities))
	return err
}

// padRight pads by rune count so Turkish letters line up
func padRight(s string, width int) string {
	for n := len([]rune(s)); n < width; n++ {
		s += " "
	}
	return s
}

// groupThousands formats n with "." separators as the source tables do, e.g. 1.234.567
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	return sign + s
}
