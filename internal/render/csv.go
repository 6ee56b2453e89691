package render

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/kilianp07/rosterlp/core/roster"
)

// RosterRow is one CSV line of the exported roster.
type RosterRow struct {
	Station int    `csv:"station"`
	Day     string `csv:"day"`
	Shift   string `csv:"shift"`
	Workers string `csv:"workers"`
}

// rosterRows flattens the roster view in station, day, shift order.
func rosterRows(sched roster.Schedule, p roster.Params) []RosterRow {
	var rows []RosterRow
	for s := 0; s < p.Stations; s++ {
		for _, day := range p.Days {
			for _, shift := range p.Shifts {
				rows = append(rows, RosterRow{
					Station: s,
					Day:     day,
					Shift:   shift,
					Workers: strings.Join(sched.Roster[s][day][shift], " "),
				})
			}
		}
	}
	return rows
}

// WriteCSV exports the roster view as CSV.
func WriteCSV(w io.Writer, sched roster.Schedule, p roster.Params) error {
	rows := rosterRows(sched, p)
	return gocsv.Marshal(&rows, w)
}
