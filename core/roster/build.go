package roster

import (
	"fmt"

	"github.com/kilianp07/rosterlp/core/milp"
)

// Index maps scheduling tuples to model variables. The extractor and
// tests use it to read a value map back into domain terms.
type Index struct {
	params Params
	works  [][][][]milp.VarID // worker, station, day, shift
	total  []milp.VarID
	dev    []milp.VarID
	needed []milp.VarID
}

// Params returns the parameters the model was built from.
func (ix *Index) Params() Params { return ix.params }

// Works returns the assignment variable for (worker, station, day, shift).
func (ix *Index) Works(w, s, d, sh int) milp.VarID { return ix.works[w][s][d][sh] }

// TotalHours returns the accumulated-slots variable of a worker.
func (ix *Index) TotalHours(w int) milp.VarID { return ix.total[w] }

// Deviation returns the workload-deviation variable of a worker.
func (ix *Index) Deviation(w int) milp.VarID { return ix.dev[w] }

// Needed returns the activation flag variable of a worker.
func (ix *Index) Needed(w int) milp.VarID { return ix.needed[w] }

// Build encodes the scheduling run as a MILP. It is a pure function of
// p: the same parameters always yield the same model. The returned
// Index resolves variables for extraction.
func Build(p Params) (*milp.Model, *Index, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	m := milp.New()
	ix := declareVars(m, p)

	m.AddRow(hoursAccountingRows(p, ix)...)
	m.AddRow(shiftExclusivityRows(p, ix)...)
	m.AddRow(pairingRows(p, ix)...)
	m.AddRow(restRows(p, ix)...)
	m.AddRow(capacityRows(p, ix)...)
	m.AddRow(deviationRows(p, ix)...)
	m.AddRow(neededRows(p, ix)...)

	m.SetObjective(milp.Maximize, objectiveTerms(p, ix))
	return m, ix, nil
}

func declareVars(m *milp.Model, p Params) *Index {
	ix := &Index{
		params: p,
		works:  make([][][][]milp.VarID, len(p.Workers)),
		total:  make([]milp.VarID, len(p.Workers)),
		dev:    make([]milp.VarID, len(p.Workers)),
		needed: make([]milp.VarID, len(p.Workers)),
	}
	for w, worker := range p.Workers {
		ix.works[w] = make([][][]milp.VarID, p.Stations)
		for s := 0; s < p.Stations; s++ {
			ix.works[w][s] = make([][]milp.VarID, len(p.Days))
			for d, day := range p.Days {
				ix.works[w][s][d] = make([]milp.VarID, len(p.Shifts))
				for sh, shift := range p.Shifts {
					name := fmt.Sprintf("works_%s_s%d_%s_%s", worker, s, day, shift)
					ix.works[w][s][d][sh] = m.AddVar(name, milp.Binary)
				}
			}
		}
	}
	for w, worker := range p.Workers {
		ix.total[w] = m.AddVar(fmt.Sprintf("total_hours_%s", worker), milp.NonNegative)
		ix.dev[w] = m.AddVar(fmt.Sprintf("deviation_%s", worker), milp.NonNegative)
		ix.needed[w] = m.AddVar(fmt.Sprintf("needed_%s", worker), milp.Binary)
	}
	return ix
}

// objectiveTerms rewards every filled slot and charges the fairness
// weight per unit of workload deviation.
func objectiveTerms(p Params, ix *Index) []milp.Term {
	var terms []milp.Term
	for w := range p.Workers {
		for s := 0; s < p.Stations; s++ {
			for d := range p.Days {
				for sh := range p.Shifts {
					terms = append(terms, milp.Term{Var: ix.works[w][s][d][sh], Coef: 1})
				}
			}
		}
	}
	for w := range p.Workers {
		terms = append(terms, milp.Term{Var: ix.dev[w], Coef: -p.FairnessWeight})
	}
	return terms
}

// hoursAccountingRows ties total_hours to the sum of a worker's
// assignments.
func hoursAccountingRows(p Params, ix *Index) []milp.Row {
	rows := make([]milp.Row, 0, len(p.Workers))
	for w, worker := range p.Workers {
		terms := workerSlotTerms(p, ix, w, 1)
		terms = append(terms, milp.Term{Var: ix.total[w], Coef: -1})
		rows = append(rows, milp.Row{
			Name:  fmt.Sprintf("hours_%s", worker),
			Terms: terms,
			Rel:   milp.EQ,
			RHS:   0,
		})
	}
	return rows
}

// shiftExclusivityRows forbid working two stations in the same shift.
func shiftExclusivityRows(p Params, ix *Index) []milp.Row {
	var rows []milp.Row
	for d, day := range p.Days {
		for sh, shift := range p.Shifts {
			for w, worker := range p.Workers {
				terms := make([]milp.Term, 0, p.Stations)
				for s := 0; s < p.Stations; s++ {
					terms = append(terms, milp.Term{Var: ix.works[w][s][d][sh], Coef: 1})
				}
				rows = append(rows, milp.Row{
					Name:  fmt.Sprintf("one_station_%s_%s_%s", worker, day, shift),
					Terms: terms,
					Rel:   milp.LE,
					RHS:   1,
				})
			}
		}
	}
	return rows
}

// pairingRows force the day and night shift of a (worker, station, day)
// on or off together.
func pairingRows(p Params, ix *Index) []milp.Row {
	var rows []milp.Row
	for s := 0; s < p.Stations; s++ {
		for d, day := range p.Days {
			for w, worker := range p.Workers {
				rows = append(rows, milp.Row{
					Name: fmt.Sprintf("pair_%s_s%d_%s", worker, s, day),
					Terms: []milp.Term{
						{Var: ix.works[w][s][d][0], Coef: 1},
						{Var: ix.works[w][s][d][1], Coef: -1},
					},
					Rel: milp.EQ,
					RHS: 0,
				})
			}
		}
	}
	return rows
}

// restRows cap a worker's combined slots on any two cyclically adjacent
// days at 2, i.e. one full worked day. The successor of the last day is
// the first.
func restRows(p Params, ix *Index) []milp.Row {
	var rows []milp.Row
	for d := range p.Days {
		next := (d + 1) % len(p.Days)
		for w, worker := range p.Workers {
			var terms []milp.Term
			for s := 0; s < p.Stations; s++ {
				for sh := range p.Shifts {
					terms = append(terms,
						milp.Term{Var: ix.works[w][s][d][sh], Coef: 1},
						milp.Term{Var: ix.works[w][s][next][sh], Coef: 1},
					)
				}
			}
			rows = append(rows, milp.Row{
				Name:  fmt.Sprintf("rest_%s_%s_%s", worker, p.Days[d], p.Days[next]),
				Terms: terms,
				Rel:   milp.LE,
				RHS:   2,
			})
		}
	}
	return rows
}

// capacityRows bound the workers on a (station, day, shift). The bound
// is 2 in the reference formulation even though its rule text says one
// worker per station; the enforced value is kept.
func capacityRows(p Params, ix *Index) []milp.Row {
	var rows []milp.Row
	for s := 0; s < p.Stations; s++ {
		for d, day := range p.Days {
			for sh, shift := range p.Shifts {
				terms := make([]milp.Term, 0, len(p.Workers))
				for w := range p.Workers {
					terms = append(terms, milp.Term{Var: ix.works[w][s][d][sh], Coef: 1})
				}
				rows = append(rows, milp.Row{
					Name:  fmt.Sprintf("capacity_s%d_%s_%s", s, day, shift),
					Terms: terms,
					Rel:   milp.LE,
					RHS:   float64(p.Capacity),
				})
			}
		}
	}
	return rows
}

// deviationRows linearize deviation >= |total_hours - average| as two
// one-sided inequalities against the real-valued average.
func deviationRows(p Params, ix *Index) []milp.Row {
	avg := p.AverageHours()
	rows := make([]milp.Row, 0, 2*len(p.Workers))
	for w, worker := range p.Workers {
		rows = append(rows,
			milp.Row{
				Name: fmt.Sprintf("dev_over_%s", worker),
				Terms: []milp.Term{
					{Var: ix.dev[w], Coef: 1},
					{Var: ix.total[w], Coef: -1},
				},
				Rel: milp.GE,
				RHS: -avg,
			},
			milp.Row{
				Name: fmt.Sprintf("dev_under_%s", worker),
				Terms: []milp.Term{
					{Var: ix.dev[w], Coef: 1},
					{Var: ix.total[w], Coef: 1},
				},
				Rel: milp.GE,
				RHS: avg,
			},
		)
	}
	return rows
}

// neededRows force needed=1 for any worker with assignments. This is a
// one-sided relaxation: nothing drives needed back to 0 for an idle
// worker and the objective never references it, so an unconstrained
// flag is solver-arbitrary.
func neededRows(p Params, ix *Index) []milp.Row {
	bigM := float64(p.MaxShifts())
	rows := make([]milp.Row, 0, len(p.Workers))
	for w, worker := range p.Workers {
		terms := workerSlotTerms(p, ix, w, -1)
		terms = append(terms, milp.Term{Var: ix.needed[w], Coef: bigM})
		rows = append(rows, milp.Row{
			Name:  fmt.Sprintf("needed_%s", worker),
			Terms: terms,
			Rel:   milp.GE,
			RHS:   0,
		})
	}
	return rows
}

// workerSlotTerms lists every assignment variable of one worker with
// the given coefficient.
func workerSlotTerms(p Params, ix *Index, w int, coef float64) []milp.Term {
	terms := make([]milp.Term, 0, p.MaxShifts())
	for s := 0; s < p.Stations; s++ {
		for d := range p.Days {
			for sh := range p.Shifts {
				terms = append(terms, milp.Term{Var: ix.works[w][s][d][sh], Coef: coef})
			}
		}
	}
	return terms
}
