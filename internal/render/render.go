// Package render turns a decoded schedule into human-readable text and
// CSV exports.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kilianp07/rosterlp/core/roster"
)

// WriteText prints the per-station roster and the per-worker schedule
// in the run's station, day and shift order.
func WriteText(w io.Writer, sched roster.Schedule, p roster.Params) error {
	var b strings.Builder

	b.WriteString("Scheduled workers per shift per station:\n")
	for s := 0; s < p.Stations; s++ {
		fmt.Fprintf(&b, "\nStation %d\n", s)
		for _, day := range p.Days {
			for _, shift := range p.Shifts {
				workers := sched.Roster[s][day][shift]
				fmt.Fprintf(&b, "%s - %s: %s\n", day, shift, joinOrDash(workers))
			}
		}
	}

	b.WriteString("\nWorker-based schedule:\n")
	for _, worker := range p.Workers {
		fmt.Fprintf(&b, "\n%s:\n", worker)
		slots := sched.ByWorker[worker]
		if len(slots) == 0 {
			b.WriteString("  (no shifts assigned)\n")
			continue
		}
		for _, a := range slots {
			fmt.Fprintf(&b, "  Station %d - %s %s\n", a.Station, a.Day, a.Shift)
		}
	}

	fmt.Fprintf(&b, "\nWorkers needed: %s\n", joinOrDash(sched.Needed))

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrDash(workers []string) string {
	if len(workers) == 0 {
		return "-"
	}
	return strings.Join(workers, ", ")
}
