package roster

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReadsAssignments(t *testing.T) {
	p := testParams(2, 1, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	values := make([]float64, m.NumVars())
	// W1 works Mon and Thu (both shifts), W2 stays idle. Use values off
	// the exact integers to exercise the epsilon tolerance.
	values[ix.Works(0, 0, 0, 0)] = 0.999999
	values[ix.Works(0, 0, 0, 1)] = 1.000001
	values[ix.Works(0, 0, 3, 0)] = 1
	values[ix.Works(0, 0, 3, 1)] = 1
	values[ix.Works(1, 0, 1, 0)] = 0.0000003 // solver noise, not assigned
	values[ix.Needed(0)] = 1
	values[ix.Needed(1)] = 0.2

	sched := Extract(values, ix)

	assert.Equal(t, []string{"W1"}, sched.Roster[0]["Mon"]["day"])
	assert.Equal(t, []string{"W1"}, sched.Roster[0]["Mon"]["night"])
	assert.Empty(t, sched.Roster[0]["Tue"]["day"])

	require.Contains(t, sched.ByWorker, "W1")
	assert.Equal(t, []Assignment{
		{Station: 0, Day: "Mon", Shift: "day"},
		{Station: 0, Day: "Mon", Shift: "night"},
		{Station: 0, Day: "Thu", Shift: "day"},
		{Station: 0, Day: "Thu", Shift: "night"},
	}, sched.ByWorker["W1"])

	// Idle workers are present, not omitted.
	require.Contains(t, sched.ByWorker, "W2")
	assert.Empty(t, sched.ByWorker["W2"])

	assert.Equal(t, []string{"W1"}, sched.Needed)
}

func TestExtractIsIdempotent(t *testing.T) {
	p := testParams(3, 2, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	values := make([]float64, m.NumVars())
	values[ix.Works(0, 1, 2, 0)] = 1
	values[ix.Works(0, 1, 2, 1)] = 1
	values[ix.Needed(0)] = 1

	first := Extract(values, ix)
	second := Extract(values, ix)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not idempotent")
	}
}

func TestExtractEveryStationDayShiftPresent(t *testing.T) {
	p := testParams(2, 2, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	sched := Extract(make([]float64, m.NumVars()), ix)
	require.Len(t, sched.Roster, 2)
	for s := 0; s < 2; s++ {
		require.Len(t, sched.Roster[s], 7)
		for _, day := range p.Days {
			require.Len(t, sched.Roster[s][day], 2)
		}
	}
	assert.Empty(t, sched.Needed)
}
