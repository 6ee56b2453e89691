package roster

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterlp/core/milp"
)

func testParams(workers int, stations int, weight float64) Params {
	ids := make([]string, workers)
	for i := range ids {
		ids[i] = "W" + string(rune('1'+i))
	}
	p := Params{Workers: ids, Stations: stations, FairnessWeight: weight}
	p.SetDefaults()
	return p
}

func rowsNamed(m *milp.Model, prefix string) []milp.Row {
	var out []milp.Row
	for _, r := range m.Rows {
		if strings.HasPrefix(r.Name, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	_, _, err := Build(Params{Stations: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestBuildDimensions(t *testing.T) {
	p := testParams(3, 2, 10)
	m, ix, err := Build(p)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	w, s := 3, 2
	slots := w * s * 7 * 2
	assert.Equal(t, slots+3*w, m.NumVars())
	assert.Equal(t, slots+w, m.NumBinary())

	wantRows := w + // hours accounting
		7*2*w + // shift exclusivity
		s*7*w + // day/night pairing
		7*w + // rest rule
		s*7*2 + // station capacity
		2*w + // deviation linearization
		w // needed flag
	assert.Equal(t, wantRows, m.NumRows())
	assert.NotNil(t, ix)
}

func TestBuildIsDeterministic(t *testing.T) {
	p := testParams(2, 1, 1)
	m1, _, err := Build(p)
	require.NoError(t, err)
	m2, _, err := Build(p)
	require.NoError(t, err)
	if !reflect.DeepEqual(m1, m2) {
		t.Fatalf("same params produced different models")
	}
}

func TestObjectiveTerms(t *testing.T) {
	p := testParams(2, 1, 10)
	m, ix, err := Build(p)
	require.NoError(t, err)

	coefs := make(map[milp.VarID]float64)
	for _, term := range m.Obj.Terms {
		coefs[term.Var] += term.Coef
	}
	assert.Equal(t, milp.Maximize, m.Obj.Sense)
	// Every slot rewards coverage with weight 1.
	for w := range p.Workers {
		for d := range p.Days {
			for sh := range p.Shifts {
				assert.Equal(t, 1.0, coefs[ix.Works(w, 0, d, sh)])
			}
		}
	}
	// Every deviation is charged the fairness weight.
	for w := range p.Workers {
		assert.Equal(t, -10.0, coefs[ix.Deviation(w)])
		assert.Zero(t, coefs[ix.Needed(w)], "objective must not reference the needed flag")
		assert.Zero(t, coefs[ix.TotalHours(w)])
	}
}

// An explicit weight of zero must survive Build: the objective becomes
// pure coverage with no deviation penalty at all.
func TestObjectiveZeroFairnessWeight(t *testing.T) {
	p := testParams(2, 1, 0)
	m, ix, err := Build(p)
	require.NoError(t, err)

	coefs := make(map[milp.VarID]float64)
	for _, term := range m.Obj.Terms {
		coefs[term.Var] += term.Coef
	}
	for w := range p.Workers {
		assert.Zero(t, coefs[ix.Deviation(w)], "deviation of worker %d must not be penalized", w)
	}
	for d := range p.Days {
		for sh := range p.Shifts {
			assert.Equal(t, 1.0, coefs[ix.Works(0, 0, d, sh)])
		}
	}
}

func TestPairingRows(t *testing.T) {
	p := testParams(2, 2, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	rows := rowsNamed(m, "pair_")
	require.Len(t, rows, 2*2*7)
	for _, row := range rows {
		assert.Equal(t, milp.EQ, row.Rel)
		assert.Zero(t, row.RHS)
		require.Len(t, row.Terms, 2)
		assert.Equal(t, 1.0, row.Terms[0].Coef)
		assert.Equal(t, -1.0, row.Terms[1].Coef)
	}
	// Spot-check one row pairs the two shifts of the same slot.
	row := rows[0]
	assert.Equal(t, ix.Works(0, 0, 0, 0), row.Terms[0].Var)
	assert.Equal(t, ix.Works(0, 0, 0, 1), row.Terms[1].Var)
}

func TestRestRowsWrapAroundWeek(t *testing.T) {
	p := testParams(1, 1, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	rows := rowsNamed(m, "rest_")
	require.Len(t, rows, 7)
	last := rows[6]
	assert.Equal(t, "rest_W1_Sun_Mon", last.Name)
	assert.Equal(t, milp.LE, last.Rel)
	assert.Equal(t, 2.0, last.RHS)

	vars := make(map[milp.VarID]bool)
	for _, term := range last.Terms {
		vars[term.Var] = true
	}
	for sh := range p.Shifts {
		assert.True(t, vars[ix.Works(0, 0, 6, sh)], "Sunday slot missing")
		assert.True(t, vars[ix.Works(0, 0, 0, sh)], "Monday slot missing after wrap")
	}
}

func TestCapacityRowsUseConfiguredBound(t *testing.T) {
	p := testParams(3, 1, 1)
	p.Capacity = 2
	m, _, err := Build(p)
	require.NoError(t, err)

	rows := rowsNamed(m, "capacity_")
	require.Len(t, rows, 1*7*2)
	for _, row := range rows {
		assert.Equal(t, milp.LE, row.Rel)
		assert.Equal(t, 2.0, row.RHS)
		assert.Len(t, row.Terms, 3)
	}
}

func TestDeviationRowsUseRealAverage(t *testing.T) {
	p := testParams(3, 2, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	avg := p.AverageHours()
	over := rowsNamed(m, "dev_over_")
	under := rowsNamed(m, "dev_under_")
	require.Len(t, over, 3)
	require.Len(t, under, 3)
	for w := 0; w < 3; w++ {
		assert.Equal(t, milp.GE, over[w].Rel)
		assert.InDelta(t, -avg, over[w].RHS, 1e-12)
		assert.Equal(t, milp.GE, under[w].Rel)
		assert.InDelta(t, avg, under[w].RHS, 1e-12)
		for _, row := range []milp.Row{over[w], under[w]} {
			found := false
			for _, term := range row.Terms {
				if term.Var == ix.Deviation(w) {
					found = true
					assert.Equal(t, 1.0, term.Coef)
				}
			}
			assert.True(t, found, "deviation variable missing from %s", row.Name)
		}
	}
}

func TestNeededRowsAreOneSided(t *testing.T) {
	p := testParams(2, 2, 1)
	m, ix, err := Build(p)
	require.NoError(t, err)

	rows := rowsNamed(m, "needed_")
	require.Len(t, rows, 2)
	bigM := float64(p.MaxShifts())
	for w, row := range rows {
		assert.Equal(t, milp.GE, row.Rel)
		assert.Zero(t, row.RHS)
		var flagCoef float64
		slotTerms := 0
		for _, term := range row.Terms {
			if term.Var == ix.Needed(w) {
				flagCoef = term.Coef
			} else {
				assert.Equal(t, -1.0, term.Coef)
				slotTerms++
			}
		}
		assert.Equal(t, bigM, flagCoef)
		assert.Equal(t, p.MaxShifts(), slotTerms)
	}
}

func TestExclusivityRows(t *testing.T) {
	p := testParams(2, 3, 1)
	m, _, err := Build(p)
	require.NoError(t, err)

	rows := rowsNamed(m, "one_station_")
	require.Len(t, rows, 7*2*2)
	for _, row := range rows {
		assert.Equal(t, milp.LE, row.Rel)
		assert.Equal(t, 1.0, row.RHS)
		assert.Len(t, row.Terms, 3, "one term per station")
	}
}
